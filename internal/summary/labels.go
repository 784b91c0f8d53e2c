package summary

import "testreport/internal/domain"

// Labels are the reader-facing section headings of a generated summary.
type Labels struct {
	Summary      string
	Conditions   string
	Improvements string
	Technical    string
	Highlights   string
	Failures     string
}

var defaultLabels = map[domain.Language]Labels{
	domain.LangTR: {
		Summary:      "Genel Özet",
		Conditions:   "Test Koşulları",
		Improvements: "İyileştirme Önerileri",
		Technical:    "Teknik Analiz Detayları",
		Highlights:   "Öne Çıkan Bulgular",
		Failures:     "Kritik Testler",
	},
	domain.LangEN: {
		Summary:      "Summary",
		Conditions:   "Test Conditions",
		Improvements: "Improvement Suggestions",
		Technical:    "Technical Analysis Details",
		Highlights:   "Key Highlights",
		Failures:     "Critical Tests",
	},
	domain.LangDE: {
		Summary:      "Zusammenfassung",
		Conditions:   "Testbedingungen",
		Improvements: "Verbesserungsvorschläge",
		Technical:    "Technische Analyse",
		Highlights:   "Wesentliche Erkenntnisse",
		Failures:     "Kritische Tests",
	},
}

// LabelsFor returns the headings for a language, defaulting to Turkish.
func LabelsFor(lang domain.Language) Labels {
	if l, ok := defaultLabels[lang]; ok {
		return l
	}
	return defaultLabels[domain.LangTR]
}

// strings holds the canned fallback texts used when a section carries no
// analyzable content.
type sectionStrings struct {
	NoTestConditions    string
	NoGraphs            string
	NoResults           string
	NoDetailed          string
	ConditionsIntro     string
	GraphsIntro         string
	ResultsIntro        string
	Appendix            string
	ImprovementsIntro   string
	ImprovementsFail    string
	ImprovementsSuccess string
	TableHeaderIndex    string
	TableHeaderDetail   string
}

var sectionStringsByLang = map[domain.Language]sectionStrings{
	domain.LangTR: {
		NoTestConditions:    "Test koşullarına ilişkin belirgin bilgi bulunamadı.",
		NoGraphs:            "Grafikler hakkında açık bilgi yok.",
		NoResults:           "Test sonuçları metin içerisinde tespit edilemedi.",
		NoDetailed:          "Detaylı teknik veri bölümü bulunamadı.",
		ConditionsIntro:     "Metinden çıkarılan test koşulları:",
		GraphsIntro:         "Grafiklere ilişkin öne çıkan noktalar:",
		ResultsIntro:        "Test sonuçlarının özet tablosu:",
		Appendix:            "Ek teknik veriler:",
		ImprovementsIntro:   "Önerilen geliştirme maddeleri:",
		ImprovementsFail:    "Belirlenen riskleri gidermek için test parametrelerini, ölçüm cihazlarını ve standart referanslarını gözden geçirin.",
		ImprovementsSuccess: "Test sonuçları olumlu; mevcut validasyon sürecini koruyabilirsiniz.",
		TableHeaderIndex:    "#",
		TableHeaderDetail:   "Detay",
	},
	domain.LangEN: {
		NoTestConditions:    "No explicit test condition details were detected.",
		NoGraphs:            "There is no explicit information about charts or graphs.",
		NoResults:           "Detailed test results were not identified in the document.",
		NoDetailed:          "No additional technical data section was detected.",
		ConditionsIntro:     "Extracted test condition highlights:",
		GraphsIntro:         "Key points related to charts/figures:",
		ResultsIntro:        "Summary table of the reported test outcomes:",
		Appendix:            "Additional technical observations:",
		ImprovementsIntro:   "Recommended improvement actions:",
		ImprovementsFail:    "Review acceptance criteria, instrumentation and repeat the tests focusing on the flagged measurements.",
		ImprovementsSuccess: "All findings look positive; keep the current validation workflow stable.",
		TableHeaderIndex:    "#",
		TableHeaderDetail:   "Detail",
	},
	domain.LangDE: {
		NoTestConditions:    "Es konnten keine eindeutigen Prüfbedingungen erkannt werden.",
		NoGraphs:            "Im Bericht wurden keine klaren Angaben zu Diagrammen gefunden.",
		NoResults:           "Ausführliche Testergebnisse wurden nicht identifiziert.",
		NoDetailed:          "Es wurde kein Abschnitt mit zusätzlichen technischen Daten gefunden.",
		ConditionsIntro:     "Hervorhebungen zu den Prüfbedingungen:",
		GraphsIntro:         "Wesentliche Hinweise zu Diagrammen/Grafiken:",
		ResultsIntro:        "Zusammenfassung der berichteten Testergebnisse:",
		Appendix:            "Zusätzliche technische Beobachtungen:",
		ImprovementsIntro:   "Empfohlene Verbesserungsmaßnahmen:",
		ImprovementsFail:    "Überprüfen Sie Grenzwerte, Messaufbauten und wiederholen Sie die Tests mit Fokus auf die auffälligen Messwerte.",
		ImprovementsSuccess: "Die Ergebnisse wirken positiv; halten Sie den aktuellen Prüfablauf bei.",
		TableHeaderIndex:    "#",
		TableHeaderDetail:   "Detail",
	},
}

func stringsFor(lang domain.Language) sectionStrings {
	if s, ok := sectionStringsByLang[lang]; ok {
		return s
	}
	return sectionStringsByLang[domain.LangTR]
}
