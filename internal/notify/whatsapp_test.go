package notify

import (
	"strings"
	"testing"
)

func TestLink(t *testing.T) {
	w := WhatsApp{BusinessName: "RideBoss Autos"}

	tests := []struct {
		name  string
		phone string
		msg   string
		want  string
	}{
		{
			"plus prefix stripped",
			"+2348012345678",
			"hello",
			"https://wa.me/2348012345678?text=hello",
		},
		{
			"spaces become percent-20",
			"2348012345678",
			"your car is ready",
			"https://wa.me/2348012345678?text=your%20car%20is%20ready",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Link(tt.phone, tt.msg); got != tt.want {
				t.Fatalf("Link() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageBuilders(t *testing.T) {
	w := WhatsApp{BusinessName: "RideBoss Autos"}

	pickup := w.PickupReady("+2348012345678", "Ada", "ABC123")
	if !strings.Contains(pickup, "ABC123") || !strings.Contains(pickup, "RideBoss%20Autos") {
		t.Fatalf("pickup link missing plate or business name: %q", pickup)
	}
	if strings.Contains(pickup, "+") {
		t.Fatalf("link must not contain '+': %q", pickup)
	}

	low := w.LowCredit("2348012345678", "Ada", 1)
	if !strings.Contains(low, "1%20wash%20credit") {
		t.Fatalf("low-credit link missing balance: %q", low)
	}

	reminder := w.VisitReminder("2348012345678", "Ada")
	if !strings.HasPrefix(reminder, "https://wa.me/2348012345678?text=") {
		t.Fatalf("reminder link malformed: %q", reminder)
	}
}
