package indicators

import "indicadores/pkg/contracts/domain"

// Title is the dashboard heading.
const Title = "INDICADORES DO SETOR DE DESENVOLVIMENTO DO GRUPO LINHARES"

// Chart metadata for the grouped tables.
var (
	ChartMeanDaysByDeveloper = domain.Chart{
		ID:       "mean_days_by_developer",
		Title:    "Média de dias de desenvolvimento por Desenvolvedor",
		XField:   "Desenvolvedor",
		YField:   "Dias Desenvolvimento",
		FileName: "media_dias_por_desenvolvedor.png",
	}

	ChartSavingsByAutomation = domain.Chart{
		ID:       "savings_by_automation",
		Title:    "Economia (%) por Automação",
		XField:   "Automação",
		YField:   "Economia (%)",
		Suffix:   "%",
		FileName: "economia_por_automacao.png",
	}

	ChartMeanSavingsByDeveloper = domain.Chart{
		ID:       "mean_savings_by_developer",
		Title:    "Economia média (%) por Desenvolvedor",
		XField:   "Desenvolvedor",
		YField:   "Economia (%)",
		Suffix:   "%",
		FileName: "economia_media_por_desenvolvedor.png",
	}
)
