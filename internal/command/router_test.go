package command

import (
	"testing"

	"github.com/Morrowga/discordbot/internal/model"
)

func TestParseLifecycleKeywords(t *testing.T) {
	cases := []struct {
		name string
		text string
		kind model.TransitionKind
		note string
	}{
		{"check-in bare", "出勤", model.TransitionCheckIn, ""},
		{"check-in with note", "出勤 today I will work on X", model.TransitionCheckIn, "today I will work on X"},
		{"check-out with note", "退勤 done for today", model.TransitionCheckOut, "done for today"},
		{"break with reason", "休憩 lunch", model.TransitionBreakStart, "lunch"},
		{"resume", "復帰", model.TransitionBreakEnd, ""},
		{"keyword mid-sentence", "そろそろ休憩します", model.TransitionBreakStart, "そろそろします"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			intent := Parse(tc.text)
			if intent == nil {
				t.Fatal("expected a command")
			}
			if intent.Status {
				t.Fatal("unexpected status intent")
			}
			if intent.Kind != tc.kind {
				t.Errorf("kind = %s, want %s", intent.Kind, tc.kind)
			}
			if intent.Note != tc.note {
				t.Errorf("note = %q, want %q", intent.Note, tc.note)
			}
		})
	}
}

func TestParseStatusKeywords(t *testing.T) {
	for _, text := range []string{"勤怠", "status", "STATUS", "  勤怠  "} {
		intent := Parse(text)
		if intent == nil || !intent.Status {
			t.Errorf("Parse(%q) = %+v, want status intent", text, intent)
		}
	}

	// Status keywords must match exactly; extra text falls through.
	if intent := Parse("勤怠 お願いします"); intent != nil {
		t.Errorf("Parse with trailing text = %+v, want nil", intent)
	}
}

func TestParsePriorityOrder(t *testing.T) {
	// Both check-in and check-out keywords present: check-in wins and
	// the other keyword survives inside the note.
	intent := Parse("出勤します、あとで退勤")
	if intent == nil || intent.Kind != model.TransitionCheckIn {
		t.Fatalf("intent = %+v, want check-in", intent)
	}
	if intent.Note != "します、あとで退勤" {
		t.Errorf("note = %q", intent.Note)
	}

	// Check-out outranks break.
	intent = Parse("休憩のあと退勤")
	if intent == nil || intent.Kind != model.TransitionCheckOut {
		t.Fatalf("intent = %+v, want check-out", intent)
	}
}

func TestParseNonCommand(t *testing.T) {
	for _, text := range []string{"hello there", "お疲れ様です", "", "   "} {
		if intent := Parse(text); intent != nil {
			t.Errorf("Parse(%q) = %+v, want nil", text, intent)
		}
	}
}
