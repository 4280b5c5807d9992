package help

import "strings"

// Category groups commands in the listing.
type Category string

const (
	CategoryReports Category = "reports"
	CategoryData    Category = "data"
	CategoryGeneral Category = "general"
)

// CategoryOrder is the listing order.
var CategoryOrder = []Category{CategoryReports, CategoryData, CategoryGeneral}

var categoryNames = map[Category]string{
	CategoryReports: "Reports",
	CategoryData:    "Students & Classes",
	CategoryGeneral: "General",
}

// DisplayName returns the category heading.
func (c Category) DisplayName() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return string(c)
}

// Command documents one shell command.
type Command struct {
	Name        string
	Aliases     []string
	Category    Category
	Description string
	Usage       string
	Examples    []Example
}

// Example is a sample invocation.
type Example struct {
	Command     string
	Description string
}

// Commands is the shell command reference.
var Commands = []Command{
	{
		Name:        "report",
		Category:    CategoryReports,
		Description: "Build and save a student or class PDF",
		Usage:       "report <student-id|class>",
		Examples: []Example{
			{Command: "report STU001", Description: "Report for one student"},
			{Command: "report 10th", Description: "One report with every student in 10th"},
			{Command: "STU002", Description: "A bare query is a report request"},
		},
	},
	{
		Name:        "students",
		Category:    CategoryData,
		Description: "List students with exam counts and averages",
		Usage:       "students",
	},
	{
		Name:        "classes",
		Category:    CategoryData,
		Description: "List classes and their sizes",
		Usage:       "classes",
	},
	{
		Name:        "show",
		Category:    CategoryData,
		Description: "Show a student's exam results and summary",
		Usage:       "show <student-id>",
		Examples: []Example{
			{Command: "show STU003", Description: "Results for STU003"},
		},
	},
	{
		Name:        "analyze",
		Category:    CategoryData,
		Description: "Subject analysis and standings for a class",
		Usage:       "analyze <class>",
		Examples: []Example{
			{Command: "analyze 11th", Description: "Averages, highs and lows per subject"},
		},
	},
	{
		Name:        "help",
		Aliases:     []string{"h", "?"},
		Category:    CategoryGeneral,
		Description: "Show this help, or details for one command",
		Usage:       "help [command]",
		Examples: []Example{
			{Command: "help report", Description: "Detailed report help"},
		},
	},
	{
		Name:        "exit",
		Aliases:     []string{"quit", "q"},
		Category:    CategoryGeneral,
		Description: "Leave the shell",
		Usage:       "exit",
	},
}

// CommandsIn returns the commands of one category.
func CommandsIn(cat Category) []Command {
	var out []Command
	for _, c := range Commands {
		if c.Category == cat {
			out = append(out, c)
		}
	}
	return out
}

// Lookup finds a command by name or alias, ignoring case.
func Lookup(name string) (Command, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
		for _, a := range c.Aliases {
			if a == name {
				return c, true
			}
		}
	}
	return Command{}, false
}

// Names returns every command name and alias.
func Names() []string {
	var out []string
	for _, c := range Commands {
		out = append(out, c.Name)
		out = append(out, c.Aliases...)
	}
	return out
}
