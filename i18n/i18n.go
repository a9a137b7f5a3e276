package i18n

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

var lang string

var translations = map[string]map[string]string{
	"Randomize": {
		"pt": "Aleatorizar",
		"es": "Aleatorizar",
		"ru": "Перемешать",
	},
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
		"ru": "Старт",
	},
	"Stop": {
		"pt": "Parar",
		"es": "Parar",
		"ru": "Стоп",
	},
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
		"ru": "Сброс",
	},
	"Algorithm:": {
		"pt": "Algoritmo:",
		"es": "Algoritmo:",
		"ru": "Алгоритм:",
	},
	"Speed:": {
		"pt": "Velocidade:",
		"es": "Velocidad:",
		"ru": "Скорость:",
	},
	"White = default, Red = comparing, Green = sorted": {
		"pt": "Branco = padrão, Vermelho = comparando, Verde = ordenado",
		"es": "Blanco = normal, Rojo = comparando, Verde = ordenado",
		"ru": "Белый = обычный, Красный = сравнение, Зелёный = отсортирован",
	},
}

func init() {
	// Check for override environment variable
	if forcedLang := strings.TrimSpace(os.Getenv("SORTVIZ_LANG")); forcedLang != "" {
		log.Printf("SORTVIZ_LANG is set to: '%s'", forcedLang)
		lang = forcedLang
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		lang = "en"
		return
	}

	if len(userLocales) > 0 {
		locale := userLocales[0]
		if strings.HasPrefix(locale, "pt") {
			lang = "pt"
		} else if strings.HasPrefix(locale, "es") {
			lang = "es"
		} else if strings.HasPrefix(locale, "ru") {
			lang = "ru"
		} else {
			lang = "en"
		}
	} else {
		lang = "en"
	}
	log.Printf("Language set to: %s", lang)
}

// T returns the translation for key in the detected language, or the
// key itself when no translation exists.
func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

// GetLang returns the detected language code.
func GetLang() string {
	return lang
}
