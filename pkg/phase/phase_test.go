package phase

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name           string
		priorUserTurns int
		message        string
		want           Phase
	}{
		{
			name:           "below threshold is reflective",
			priorUserTurns: 4,
			message:        "I had a rough day",
			want:           Reflective,
		},
		{
			name:           "at threshold is advisory",
			priorUserTurns: 5,
			message:        "I had a rough day",
			want:           Advisory,
		},
		{
			name:           "above threshold is advisory",
			priorUserTurns: 12,
			message:        "more of the same",
			want:           Advisory,
		},
		{
			name:           "fresh session is reflective",
			priorUserTurns: 0,
			message:        "hi",
			want:           Reflective,
		},
		{
			name:           "help request forces advisory on first turn",
			priorUserTurns: 0,
			message:        "please help me, what should I do?",
			want:           Advisory,
		},
		{
			name:           "help request phrasing is case insensitive",
			priorUserTurns: 1,
			message:        "I NEED HELP with this",
			want:           Advisory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.priorUserTurns, tt.message)
			if got != tt.want {
				t.Errorf("Compute(%d, %q) = %s, want %s", tt.priorUserTurns, tt.message, got, tt.want)
			}
		})
	}
}

func TestIsHelpRequest(t *testing.T) {
	if !IsHelpRequest("any tips for sleeping better?") {
		t.Error("expected help request")
	}
	if IsHelpRequest("today was fine") {
		t.Error("expected no help request")
	}
}
