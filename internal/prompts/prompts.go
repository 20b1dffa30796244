// Package prompts holds the fixed and parameterized texts used by the assistant.
package prompts

import (
	"embed"
	"fmt"
	"strings"

	"github.com/spigell/hiring-assistant/internal/candidate"
)

//go:embed templates/*.md
var templates embed.FS

const (
	// Unavailable is returned on every collection turn when the completion service is down.
	Unavailable = "Sorry, the local AI model is not available. Please ensure Ollama is installed and running."
	// ExtractionFailed is returned when the extraction call fails.
	ExtractionFailed = "I had trouble processing that information. Could you please provide your details again?"
	// ProcessingFailed is returned when a turn fails unexpectedly.
	ProcessingFailed = "I apologize, but I encountered an issue processing your response. Could you please try again?"
	// TechQuestionsReceived closes the technical questions stage.
	TechQuestionsReceived = "Thank you for your detailed responses! Our team will review your information and technical answers. " +
		"We'll get back to you within 2-3 business days with next steps in the interview process."
	// QuestionsFallback replaces generated questions when the completion service fails.
	QuestionsFallback = "I'll prepare some technical questions based on your experience with Python, Django, and React. " +
		"Please tell me about a challenging project you've worked on."

	defaultName = "there"
)

func mustRead(name string) string {
	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("prompt template %s: %v", name, err))
	}
	return strings.TrimSpace(string(data))
}

var (
	welcome            = mustRead("welcome.md")
	infoCollection     = mustRead("info_collection.md")
	extraction         = mustRead("extraction.md")
	questionGeneration = mustRead("question_generation.md")
	fallback           = mustRead("fallback.md")
	goodbye            = mustRead("goodbye.md")
)

func Welcome() string        { return welcome }
func InfoCollection() string { return infoCollection }
func Fallback() string       { return fallback }
func Goodbye() string        { return goodbye }

// Extraction builds the request asking the model to restate the candidate details
// found in message.
func Extraction(context, message string) string {
	if strings.TrimSpace(context) == "" {
		context = "No information collected yet."
	}
	return strings.NewReplacer(
		"{{CONTEXT}}", context,
		"{{MESSAGE}}", message,
	).Replace(extraction)
}

// QuestionGeneration is the system instruction for generating interview questions.
func QuestionGeneration(techStack, experience string) string {
	return strings.NewReplacer(
		"{{TECH_STACK}}", techStack,
		"{{EXPERIENCE}}", experience,
	).Replace(questionGeneration)
}

// QuestionRequest is the user turn sent along with QuestionGeneration.
func QuestionRequest(techStack, experience string) string {
	return fmt.Sprintf("Generate 3-4 technical questions for a candidate with %s experience in %s.", experience, techStack)
}

// SpecificInfoRequest asks for exactly the missing fields.
func SpecificInfoRequest(missing []string, name string) string {
	if name == "" {
		name = defaultName
	}

	switch len(missing) {
	case 0:
		return fmt.Sprintf("Thank you %s! Could you tell me a bit more about your background?", name)
	case 1:
		return fmt.Sprintf("Thank you %s! I have most of your information.\n\nI still need your %s. Could you please provide that?", name, missing[0])
	default:
		fields := strings.Join(missing[:len(missing)-1], ", ") + ", and " + missing[len(missing)-1]
		return fmt.Sprintf("Thank you %s! I have some of your information, but I still need a few more details:\n\nPlease provide your %s.", name, fields)
	}
}

// Acknowledgment summarises what was recorded before the technical questions.
func Acknowledgment(r candidate.Record) string {
	name := r.Name
	if name == "" {
		name = defaultName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you, %s! I've recorded your information:\n\n", name)

	if r.Email != "" {
		fmt.Fprintf(&b, "✓ Email: %s\n", r.Email)
	}
	if r.Experience != "" {
		fmt.Fprintf(&b, "✓ Experience: %s\n", r.Experience)
	}

	stack := r.TechStack.Values()
	if len(stack) > 0 {
		fmt.Fprintf(&b, "✓ Technical Skills: %s\n", strings.Join(stack, ", "))
	}

	background := "software development"
	if len(stack) > 0 {
		background = strings.Join(stack[:min(3, len(stack))], ", ")
	}
	fmt.Fprintf(&b, "\nBased on your background in %s, I've prepared some relevant technical questions for you.", background)

	return b.String()
}
