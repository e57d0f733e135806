package application

import (
	"regexp"
	"strings"

	"github.com/bnema/gothub-kernel/internal/domain"
)

// space is one Unicode whitespace character. RE2's \s only covers ASCII, so
// a non-breaking space after a keyword would otherwise turn it into a prompt.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// terminator matches what may follow a command keyword: a colon, trailing
// whitespace up to the end of the cell, or a whitespace run before more text.
const terminator = `(?P<term>:|` + space + `*$|` + space + `+)`

type modelAlias struct {
	name    string
	pattern string
	model   domain.ModelID
}

// modelAliases is tried in order; an alias must not be a prefix of a later one.
var modelAliases = []modelAlias{
	{name: "gpt-3.5", pattern: `gpt-?3\.5`, model: domain.ModelGPT35},
	{name: "gpt-4", pattern: `gpt-?4`, model: domain.ModelGPT4},
	{name: "mixtral", pattern: `mixtral`, model: domain.ModelMixtral},
	{name: "llama-2", pattern: `llama-?2`, model: domain.ModelLlama2},
	{name: "code-llama", pattern: `code-?llama`, model: domain.ModelCodeLlama},
	{name: "dall-e-3", pattern: `dall-?e-?3`, model: domain.ModelDallE3},
	{name: "sdxl", pattern: `sdxl`, model: domain.ModelSDXL},
}

type commandRule struct {
	pattern *regexp.Regexp
	build   func(rest string) domain.Command
}

var commandRules = buildCommandRules()

func buildCommandRules() []commandRule {
	rules := []commandRule{
		{
			pattern: regexp.MustCompile(`^` + space + `*print` + space + `+account` + space + `*$`),
			build:   func(string) domain.Command { return domain.PrintAccountCommand{} },
		},
		{
			pattern: regexp.MustCompile(`^` + space + `*super king debug` + space + `*$`),
			build:   func(string) domain.Command { return domain.DebugCommand{} },
		},
		{
			pattern: regexp.MustCompile(`^` + space + `*as` + space + `+(?:code|py|python)` + terminator),
			build:   func(rest string) domain.Command { return domain.PassthroughCommand{Code: rest} },
		},
		{
			pattern: regexp.MustCompile(`^` + space + `*as` + space + `+new` + space + `+chat` + terminator),
			build:   func(rest string) domain.Command { return domain.NewChatCommand{Rest: rest} },
		},
	}

	for _, alias := range modelAliases {
		rules = append(rules, commandRule{
			pattern: regexp.MustCompile(`^` + space + `*with` + space + `+` + alias.pattern + terminator),
			build: func(rest string) domain.Command {
				return domain.OverrideCommand{Alias: alias.name, Model: alias.model, Rest: rest}
			},
		})
	}

	return rules
}

// ParseCommand turns raw cell text into a Command. Rules are tried in order
// and the first match wins; text matching no rule is a generation prompt.
func ParseCommand(text string) domain.Command {
	for _, rule := range commandRules {
		loc := rule.pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}

		rest := ""
		if term := rule.pattern.SubexpIndex("term"); term > 0 {
			rest = text[loc[2*term+1]:]
		}
		return rule.build(rest)
	}

	prompt := strings.TrimSpace(text)
	if prompt == "" {
		return domain.NoOpCommand{}
	}
	return domain.GenerateCommand{Prompt: prompt}
}

// ResolveModelAlias maps a user-facing alias such as "gpt-3.5" or "sdxl" to a
// model id. Unknown aliases are returned unchanged as model ids.
func ResolveModelAlias(alias string) domain.ModelID {
	trimmed := strings.TrimSpace(alias)
	key := strings.ReplaceAll(strings.ToLower(trimmed), "-", "")
	for _, candidate := range modelAliases {
		if key == strings.ReplaceAll(candidate.name, "-", "") {
			return candidate.model
		}
	}
	return domain.ModelID(trimmed)
}
