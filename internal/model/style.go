package model

import "github.com/iamvkosarev/post-generator-bot/pkg/local"

const DefaultTemperature = 0.7

type StyleID string

const (
	StyleLogical  = StyleID("logical")
	StyleCreative = StyleID("creative")
	StyleBalanced = StyleID("balanced")
)

type Style struct {
	ID          StyleID
	Label       local.TextSet
	Description local.TextSet
	Temperature float64
}

var styles = []Style{
	{
		ID:          StyleLogical,
		Label:       local.NewSet("Логический", local.NewTrans(local.Eng, "Logical")),
		Description: local.NewSet("точный, структурированный текст", local.NewTrans(local.Eng, "precise, structured text")),
		Temperature: 0.1,
	},
	{
		ID:          StyleCreative,
		Label:       local.NewSet("Креативный мастер", local.NewTrans(local.Eng, "Creative master")),
		Description: local.NewSet("яркий, неожиданный текст", local.NewTrans(local.Eng, "vivid, unexpected text")),
		Temperature: 1.0,
	},
	{
		ID:          StyleBalanced,
		Label:       local.NewSet("Сбалансированный", local.NewTrans(local.Eng, "Balanced")),
		Description: local.NewSet("точность и эмоции в балансе", local.NewTrans(local.Eng, "precision and emotion in balance")),
		Temperature: 0.6,
	},
}

// Styles returns the styles in menu order.
func Styles() []Style {
	result := make([]Style, len(styles))
	copy(result, styles)
	return result
}

func StyleLabels(language local.Language) []string {
	labels := make([]string, 0, len(styles))
	for _, style := range styles {
		labels = append(labels, style.Label.Text(language))
	}
	return labels
}

// MatchStyle finds the style whose label in the given language equals text exactly.
func MatchStyle(text string, language local.Language) (Style, bool) {
	for _, style := range styles {
		if style.Label.Text(language) == text {
			return style, true
		}
	}
	return Style{}, false
}
