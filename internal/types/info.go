package types

// CategoryInfo is the static display metadata attached to a category section.
type CategoryInfo struct {
	Title       string
	Description string
	Impact      string
	Severity    Severity // default level for the category as a whole
	Color       string
}

//nolint:gochecknoglobals // configuration data, effectively const
var categoryInfo = map[Category]CategoryInfo{
	CategoryPosture: {
		Title: "Problemas de Postura",
		Description: "Detecção de postura incorreta durante a corrida, caracterizada por ângulos " +
			"inadequados entre ombro, quadril e joelho.",
		Impact: "Pode causar dores nas costas, redução da eficiência da corrida e aumento do " +
			"risco de lesões.",
		Severity: SeverityMedium,
		Color:    "orange",
	},
	CategoryOverstride: {
		Title: "Problemas de Overstride",
		Description: "Detecção de passadas excessivamente longas, onde o pé aterrissa muito à " +
			"frente do centro de massa.",
		Impact: "Aumenta o impacto nas articulações, reduz a eficiência energética e pode " +
			"causar lesões por overuse.",
		Severity: SeverityLow,
		Color:    "blue",
	},
	CategoryVisibility: {
		Title: "Problemas de Visibilidade",
		Description: "Frames onde a detecção de landmarks corporais foi comprometida devido a " +
			"baixa qualidade da imagem.",
		Impact: "Pode resultar em análises menos precisas e dados incompletos para avaliação " +
			"biomecânica.",
		Severity: SeverityLow,
		Color:    "purple",
	},
}

// Info returns the display metadata for a category. Unknown categories get a zero value.
func Info(category Category) CategoryInfo {
	return categoryInfo[category]
}
