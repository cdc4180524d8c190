package embedding

import (
	"reflect"
	"testing"
)

func TestPrepareText(t *testing.T) {
	if got := PrepareText("cats", "retrieve"); got != "retrieve: cats" {
		t.Errorf("PrepareText = %q, want %q", got, "retrieve: cats")
	}
	if got := PrepareText("cats", ""); got != "cats" {
		t.Errorf("no instruction should leave text unchanged, got %q", got)
	}
}

func TestPrepareTexts(t *testing.T) {
	texts := []string{"a", "b"}
	got := PrepareTexts(texts, "query")
	want := []string{"query: a", "query: b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PrepareTexts = %v, want %v", got, want)
	}
	// no instruction: same slice back, untouched
	same := PrepareTexts(texts, "")
	if !reflect.DeepEqual(same, texts) {
		t.Errorf("PrepareTexts without instruction = %v, want %v", same, texts)
	}
	// input must not be mutated
	if texts[0] != "a" || texts[1] != "b" {
		t.Errorf("input slice was mutated: %v", texts)
	}
}
