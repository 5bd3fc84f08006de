package handler

import (
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"lyro/internal/service"
)

func TestDecodeQuestionInputJSON(t *testing.T) {
	body := `{
		"questionContent": ["Solve for x", "diagram.png"],
		"questionContentType": ["text", "image"],
		"options": [["2x + 6"], "2x + 3", ["x", "+ 6"], ["2x + 5"]],
		"optionsType": [["text"], "text", ["text", "text"], ["text"]],
		"correctOptionIndex": 2
	}`
	r := httptest.NewRequest("POST", "/v1/admin/tests/t1/questions", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	got, err := decodeQuestionInput(r)
	if err != nil {
		t.Fatalf("decodeQuestionInput() error: %v", err)
	}

	want := service.NBTQuestionInput{
		QuestionContent:      []string{"Solve for x", "diagram.png"},
		QuestionContentTypes: []string{"text", "image"},
		Options:              [][]string{{"2x + 6"}, {"2x + 3"}, {"x", "+ 6"}, {"2x + 5"}},
		OptionTypes:          [][]string{{"text"}, {"text"}, {"text", "text"}, {"text"}},
		CorrectOptionIndex:   2,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decodeQuestionInput() = %#v, want %#v", got, want)
	}
}

func TestDecodeQuestionInputScalarJSON(t *testing.T) {
	// single-part content arrives as a plain string, not a list
	body := `{"questionContent": "Solve for x", "correctOptionIndex": 0}`
	r := httptest.NewRequest("POST", "/v1/admin/tests/t1/questions", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	got, err := decodeQuestionInput(r)
	if err != nil {
		t.Fatalf("decodeQuestionInput() error: %v", err)
	}
	if want := []string{"Solve for x"}; !reflect.DeepEqual(got.QuestionContent, want) {
		t.Errorf("QuestionContent = %#v, want %#v", got.QuestionContent, want)
	}
}

func TestDecodeQuestionInputForm(t *testing.T) {
	form := url.Values{}
	form.Add("questionContent", "Solve for x")
	form.Add("questionContent", "diagram.png")
	form.Add("questionContentType", "text")
	form.Add("questionContentType", "image")
	form.Add("options[0]", "2x + 6")
	form.Add("options[1]", "2x + 3")
	form.Add("optionsType[0]", "text")
	form.Add("optionsType[1]", "text")
	form.Add("correctOptionIndex", "1")

	r := httptest.NewRequest("POST", "/v1/admin/tests/t1/questions", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := decodeQuestionInput(r)
	if err != nil {
		t.Fatalf("decodeQuestionInput() error: %v", err)
	}

	if want := []string{"Solve for x", "diagram.png"}; !reflect.DeepEqual(got.QuestionContent, want) {
		t.Errorf("QuestionContent = %#v, want %#v", got.QuestionContent, want)
	}
	if len(got.Options) != 4 {
		t.Fatalf("got %d option slots, want 4", len(got.Options))
	}
	if want := []string{"2x + 3"}; !reflect.DeepEqual(got.Options[1], want) {
		t.Errorf("Options[1] = %#v, want %#v", got.Options[1], want)
	}
	if len(got.Options[3]) != 0 {
		t.Errorf("Options[3] = %#v, want empty", got.Options[3])
	}
	if got.CorrectOptionIndex != 1 {
		t.Errorf("CorrectOptionIndex = %d, want 1", got.CorrectOptionIndex)
	}
}

func TestParseInstant(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "2026-03-01T08:00:00Z"},
		{in: "2026-03-01T08:00:00+02:00"},
		{in: "2026-03-01T08:00"}, // datetime-local
		{in: "March 1st", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := parseInstant(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseInstant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}
