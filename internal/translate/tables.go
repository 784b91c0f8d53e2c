package translate

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"testreport/internal/domain"
)

// langPair is a directed translation direction.
type langPair struct {
	src domain.Language
	dst domain.Language
}

// pairTable holds the phrase and word dictionaries for one direction plus
// the compiled phrase matcher. Phrase keys are lowercase; an empty word
// value deletes the token.
type pairTable struct {
	phrases  map[string]string
	words    map[string]string
	phraseRe *regexp.Regexp
}

// Hand-authored forward dictionaries, anchored on English.
var basePhrases = map[langPair]map[string]string{
	{domain.LangEN, domain.LangTR}: {
		"high-speed camera":   "yüksek hızlı kamera",
		"high-speed cameras":  "yüksek hızlı kameralar",
		"test setup":          "test kurulumu",
		"test environment":    "test ortamı",
		"ambient temperature": "ortam sıcaklığı",
		"measurement file":    "ölçüm dosyası",
		"expert notes":        "uzman notları",
		"test conditions":     "test koşulları",
		"camera recordings":   "kamera kayıtları",
		"no deviations":       "sapma yok",
		"data logger":         "veri kaydedici",
		"was performed with":  "ile gerçekleştirildi",
		"was carried out":     "gerçekleştirildi",
	},
	{domain.LangEN, domain.LangDE}: {
		"high-speed camera":   "Hochgeschwindigkeitskamera",
		"high-speed cameras":  "Hochgeschwindigkeitskameras",
		"test setup":          "Testaufbau",
		"test environment":    "Testumgebung",
		"ambient temperature": "Umgebungstemperatur",
		"measurement file":    "Messdatei",
		"expert notes":        "Expertenhinweise",
		"test conditions":     "Testbedingungen",
		"camera recordings":   "Kameraaufzeichnungen",
		"no deviations":       "Keine Abweichungen",
		"data logger":         "Datenlogger",
		"was carried out":     "wurde durchgeführt",
	},
}

var baseWords = map[langPair]map[string]string{
	{domain.LangEN, domain.LangTR}: {
		"test":         "test",
		"tests":        "testler",
		"note":         "not",
		"notes":        "notlar",
		"camera":       "kamera",
		"cameras":      "kameralar",
		"recorded":     "kaydedildi",
		"recording":    "kayıt",
		"environment":  "ortam",
		"condition":    "koşul",
		"conditions":   "koşulları",
		"system":       "sistem",
		"operator":     "operatör",
		"measurement":  "ölçüm",
		"measurements": "ölçümler",
		"performed":    "gerçekleştirildi",
		"analysis":     "analiz",
		"summary":      "özet",
		"failure":      "başarısızlık",
		"pass":         "başarılı",
		"fail":         "başarısız",
		"reference":    "referans",
		"temperature":  "sıcaklık",
		"humidity":     "nem",
		"voltage":      "voltaj",
		"frequency":    "frekans",
		"power":        "güç",
		"setup":        "kurulum",
		"load":         "yük",
		"result":       "sonuç",
		"results":      "sonuçlar",
		"expert":       "uzman",
		"warning":      "uyarı",
		"attention":    "dikkat",
		"with":         "ile",
		"under":        "altında",
		"the":          "",
		"was":          "oldu",
		"carried":      "gerçekleştirildi",
		"out":          "",
	},
	{domain.LangEN, domain.LangDE}: {
		"test":         "Test",
		"tests":        "Tests",
		"note":         "Hinweis",
		"notes":        "Hinweise",
		"camera":       "Kamera",
		"cameras":      "Kameras",
		"recorded":     "aufgezeichnet",
		"recording":    "Aufzeichnung",
		"environment":  "Umgebung",
		"condition":    "Bedingung",
		"conditions":   "Bedingungen",
		"system":       "System",
		"operator":     "Operator",
		"measurement":  "Messung",
		"measurements": "Messungen",
		"performed":    "durchgeführt",
		"analysis":     "Analyse",
		"summary":      "Zusammenfassung",
		"failure":      "Fehler",
		"pass":         "bestanden",
		"fail":         "fehlgeschlagen",
		"reference":    "Referenz",
		"temperature":  "Temperatur",
		"humidity":     "Feuchtigkeit",
		"voltage":      "Spannung",
		"frequency":    "Frequenz",
		"power":        "Leistung",
		"setup":        "Aufbau",
		"load":         "Belastung",
		"result":       "Ergebnis",
		"results":      "Ergebnisse",
		"expert":       "Experte",
		"warning":      "Warnung",
		"attention":    "Achtung",
		"with":         "mit",
		"under":        "unter",
		"was":          "war",
		"carried":      "durchgeführt",
		"out":          "",
	},
}

// Hand-authored entries for derived directions. These take precedence
// over mechanically inverted ones.
var extraPhrases = map[langPair]map[string]string{
	{domain.LangDE, domain.LangEN}: {
		"wurde mit":                       "was performed with",
		"wurde unter":                     "was conducted under",
		"für hochgeschwindigkeitskameras": "for high-speed cameras",
	},
	{domain.LangDE, domain.LangTR}: {
		"wurde mit":   "ile gerçekleştirildi",
		"wurde unter": "altında yürütüldü",
	},
	{domain.LangTR, domain.LangEN}: {
		"yüksek hızlı": "high-speed",
		"test raporu":  "test report",
	},
	{domain.LangTR, domain.LangDE}: {
		"yüksek hızlı":   "hohe geschwindigkeit",
		"test koşulları": "Testbedingungen",
	},
}

var extraWords = map[langPair]map[string]string{
	{domain.LangDE, domain.LangEN}: {
		"der":          "the",
		"die":          "the",
		"das":          "the",
		"ein":          "a",
		"eine":         "a",
		"wurde":        "was",
		"wurden":       "were",
		"mit":          "with",
		"unter":        "under",
		"bei":          "at",
		"messung":      "measurement",
		"messungen":    "measurements",
		"geräte":       "equipment",
		"ausrüstung":   "equipment",
		"hinweis":      "note",
		"hinweise":     "notes",
		"kamera":       "camera",
		"kameras":      "cameras",
		"bedingungen":  "conditions",
		"umgebung":     "environment",
		"temperatur":   "temperature",
		"feuchtigkeit": "humidity",
		"aufgenommen":  "recorded",
		"aufzeichnung": "recording",
		"protokoll":    "log",
		"daten":        "data",
		"getestet":     "tested",
		"test":         "test",
		"prüfung":      "test",
		"gerät":        "device",
		"ergebnis":     "result",
		"ergebnisse":   "results",
		"abweichung":   "deviation",
		"abweichungen": "deviations",
	},
	{domain.LangTR, domain.LangEN}: {
		"ile":              "with",
		"altında":          "under",
		"yapıldı":          "was carried out",
		"kaydedildi":       "was recorded",
		"çalıştı":          "operated",
		"koşul":            "condition",
		"koşulları":        "conditions",
		"cihaz":            "device",
		"cihazı":           "device",
		"test":             "test",
		"not":              "note",
		"notları":          "notes",
		"notu":             "note",
		"ölçüm":            "measurement",
		"ölçümler":         "measurements",
		"gerçekleştirildi": "was performed",
		"ortam":            "environment",
		"sıcaklığı":        "temperature",
		"kamera":           "camera",
		"kameralar":        "cameras",
	},
}

var (
	tablesOnce   sync.Once
	tablesByPair map[langPair]*pairTable
)

// translationTables builds the process-wide table set once. Construction
// is two-phase: authored entries first, then mechanical inversions filled
// in only where no authored entry exists.
func translationTables() map[langPair]*pairTable {
	tablesOnce.Do(func() {
		tablesByPair = buildTables()
	})
	return tablesByPair
}

func buildTables() map[langPair]*pairTable {
	tables := map[langPair]*pairTable{}

	get := func(pair langPair) *pairTable {
		t, ok := tables[pair]
		if !ok {
			t = &pairTable{phrases: map[string]string{}, words: map[string]string{}}
			tables[pair] = t
		}
		return t
	}

	for pair, phrases := range basePhrases {
		for k, v := range phrases {
			get(pair).phrases[k] = v
		}
	}
	for pair, words := range baseWords {
		for k, v := range words {
			get(pair).words[k] = v
		}
	}
	for pair, phrases := range extraPhrases {
		for k, v := range phrases {
			get(pair).phrases[k] = v
		}
	}
	for pair, words := range extraWords {
		for k, v := range words {
			get(pair).words[k] = v
		}
	}

	// Derive reverse directions. Authored entries win over inversions.
	forward := make([]langPair, 0, len(tables))
	for pair := range tables {
		forward = append(forward, pair)
	}
	sort.Slice(forward, func(i, j int) bool {
		if forward[i].src != forward[j].src {
			return forward[i].src < forward[j].src
		}
		return forward[i].dst < forward[j].dst
	})
	// Sorted key iteration keeps first-write-wins deterministic when
	// several entries share a value (der/die/das all invert to "the").
	invert := func(src, reverse map[string]string) {
		keys := make([]string, 0, len(src))
		for k := range src {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := src[k]
			if k == "" || v == "" {
				continue
			}
			key := strings.ToLower(v)
			if _, exists := reverse[key]; !exists {
				reverse[key] = k
			}
		}
	}
	for _, pair := range forward {
		src := tables[pair]
		reverse := get(langPair{src: pair.dst, dst: pair.src})
		invert(src.phrases, reverse.phrases)
		invert(src.words, reverse.words)
	}

	for _, t := range tables {
		t.phraseRe = compilePhraseRegex(t.phrases)
	}
	return tables
}

// compilePhraseRegex joins all phrase keys longest-first so overlapping
// phrases resolve to the most specific one.
func compilePhraseRegex(phrases map[string]string) *regexp.Regexp {
	if len(phrases) == 0 {
		return nil
	}
	keys := make([]string, 0, len(phrases))
	for k := range phrases {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
}
