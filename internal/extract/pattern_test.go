package extract

import (
	"reflect"
	"testing"

	"github.com/spigell/hiring-assistant/internal/candidate"
)

func TestPatternExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want candidate.Update
	}{
		{
			name: "labelled completion",
			text: "I've extracted the following information from your message:\n" +
				"- Name: Jane Doe\n" +
				"- Email: jane@acme.com\n" +
				"- Phone: (555) 123-4567\n" +
				"- Experience: 5 years of experience\n" +
				"- Technical skills: Python, React",
			want: candidate.Update{
				Name:       "Jane Doe",
				Email:      "jane@acme.com",
				Phone:      "(555) 123-4567",
				Experience: "5 years",
				TechStack:  []string{"Python", "React"},
			},
		},
		{
			name: "name only",
			text: "Name: Bob",
			want: candidate.Update{Name: "Bob"},
		},
		{
			name: "single year",
			text: "He has 1 year experience",
			want: candidate.Update{Experience: "1 years"},
		},
		{
			name: "phone number label",
			text: "Phone number: 555 000 1111",
			want: candidate.Update{Phone: "555 000 1111"},
		},
		{
			name: "position and location",
			text: "Position: Backend Engineer\nLocation: Berlin, Germany.",
			want: candidate.Update{Position: "Backend Engineer", Location: "Berlin, Germany"},
		},
		{
			name: "nothing recognised",
			text: "Could you tell me a bit more about yourself?",
			want: candidate.Update{},
		},
	}

	p := NewPattern()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestPatternTechStackIsSubstringMatch(t *testing.T) {
	got := NewPattern().Extract("Skills: PostgreSQL and NodeJS").TechStack
	want := []string{"Postgresql", "Node", "Sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPatternEmailWithoutLabel(t *testing.T) {
	got := NewPattern().Extract("reach me at jane.doe-1@mail.acme.co please")
	if got.Email != "jane.doe-1@mail.acme.co" {
		t.Fatalf("unexpected email: %q", got.Email)
	}
}
