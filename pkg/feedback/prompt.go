package feedback

import (
	"fmt"
	"strings"

	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

const systemPrompt = "You are an experienced teacher writing concise academic reports. " +
	"Keep the feedback specific, encouraging and actionable. " +
	"Limit each section to approximately 50 words and keep the tone professional and constructive."

// ResultsTable renders results one per line as "Subject: marks/total (pct%)".
func ResultsTable(results []gradebook.Result) string {
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "%s: %s/%s (%s)\n", r.ExamName,
			gradebook.FormatMarks(r.Marks), gradebook.FormatMarks(r.TotalMarks),
			gradebook.FormatPercent(r.Percentage()))
	}
	return sb.String()
}

// UserPrompt builds the user message for req.
func UserPrompt(req Request) string {
	sum := gradebook.Summarize(req.Results, req.PassMark)

	var sb strings.Builder
	sb.WriteString("Please analyze this student's exam performance:\n\n")
	fmt.Fprintf(&sb, "Student: %s\n", req.StudentName)
	if req.Class != "" {
		fmt.Fprintf(&sb, "Class: %s\n", req.Class)
	}
	if req.Grade != "" {
		fmt.Fprintf(&sb, "Grade: %s\n", req.Grade)
	}
	sb.WriteString("Exam Results:\n")
	sb.WriteString(ResultsTable(req.Results))
	fmt.Fprintf(&sb, "Overall Performance: %s\n", gradebook.FormatPercent(sum.Overall))
	fmt.Fprintf(&sb, "Performance Level: %s\n\n", gradebook.PerformanceFor(sum.Average))

	switch req.Variant {
	case VariantStakeholder:
		sb.WriteString("Respond with a JSON object with exactly these keys, each around 50 words:\n")
		sb.WriteString(`{"studentFeedback": "encouraging feedback addressed to the student", `)
		sb.WriteString(`"parentFeedback": "guidance for the parents on how to support the student", `)
		sb.WriteString(`"teacherNotes": "observations and next steps for teachers"}`)
	case VariantNarrative:
		sb.WriteString("Please provide:\n")
		sb.WriteString("1. A brief overall performance assessment\n")
		sb.WriteString("2. Specific strengths shown in the results\n")
		sb.WriteString("3. Areas that need attention\n")
		sb.WriteString("4. Actionable study recommendations\n\n")
		sb.WriteString("Format the response in clear paragraphs with appropriate spacing.")
	default:
		sb.WriteString("Respond with a JSON object with exactly these keys, each around 50 words:\n")
		sb.WriteString(`{"academic": "overall academic progress", `)
		sb.WriteString(`"strengths": "key strengths", `)
		sb.WriteString(`"challenges": "main areas for improvement", `)
		sb.WriteString(`"recommendations": "specific, actionable recommendations"}`)
	}
	return sb.String()
}
