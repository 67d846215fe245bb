// Package locale holds every user-facing string of the bot, keyed by message and language.
package locale

import (
	"fmt"
	"strings"

	"heroes-marathon-bot/internal/domain"
)

type Key string

const (
	AskName              Key = "ask_name"
	InvalidName          Key = "invalid_name"
	InvalidNameAnyLength Key = "invalid_name_any_length"
	AskSurname           Key = "ask_surname"
	InvalidSurname       Key = "invalid_surname"
	InvalidSurnameAny    Key = "invalid_surname_any_length"
	AskBirthDay          Key = "ask_birth_day"
	InvalidBirthDay      Key = "invalid_birth_day"
	AskBirthMonth        Key = "ask_birth_month"
	InvalidBirthMonth    Key = "invalid_birth_month"
	AskBirthYear         Key = "ask_birth_year"
	InvalidBirthYear     Key = "invalid_birth_year"
	AskPhone             Key = "ask_phone"
	InvalidPhone         Key = "invalid_phone"
	LocationInstruction  Key = "location_instruction"
	AskStart             Key = "ask_start"
	StartRetry           Key = "start_retry"
	AskFinish            Key = "ask_finish"
	InvalidLocation      Key = "invalid_location"
	NoStartRecorded      Key = "no_start_recorded"
	Finished             Key = "finished"
	Website              Key = "website"
	SaveFailed           Key = "save_failed"
	AlreadyFinished      Key = "already_finished"
	Glory                Key = "glory"
	Placeholder          Key = "placeholder"

	ButtonSkip              Key = "button_skip"
	ButtonShare             Key = "button_share"
	ButtonStart             Key = "button_start"
	ButtonStartRetry        Key = "button_start_retry"
	ButtonFinish            Key = "button_finish"
	ButtonWebsite           Key = "button_website"
	ButtonAlreadyRegistered Key = "button_already_registered"
)

// Language selection happens before a language is known, so these texts are bilingual.
const (
	Welcome = "Вітаємо Вас на «Марафоні Героїв»!\nWelcome to the «Heroes Marathon»!\n\n" +
		"Будь ласка, оберіть мову.\nPlease select your language."
	LanguageRetry = "Будь ласка, оберіть мову з наданих варіантів.\n" +
		"Please select a language from the options provided."
	NoStartRecordedBilingual = "Старт ще не зафіксовано. Будь ласка, пройдіть реєстрацію та натисніть «СТАРТ».\n" +
		"Your start has not been recorded. Please complete registration and press «START»."

	ButtonUkrainian = "Українська"
	ButtonEnglish   = "English"
)

var catalog = map[Key]map[domain.Language]string{
	AskName: {
		domain.Ukrainian: "Ви обрали українську мову.\nБудь ласка, введіть своє ім’я.",
		domain.English:   "You have selected English.\nPlease enter your name.",
	},
	InvalidName: {
		domain.Ukrainian: "Будь ласка, введіть коректне ім'я (тільки літери, мінімум %d символи).",
		domain.English:   "Please enter a valid name (letters only, minimum %d characters).",
	},
	InvalidNameAnyLength: {
		domain.Ukrainian: "Будь ласка, введіть коректне ім'я (тільки літери).",
		domain.English:   "Please enter a valid name (letters only).",
	},
	AskSurname: {
		domain.Ukrainian: "Будь ласка, введіть своє прізвище.",
		domain.English:   "Please enter your surname.",
	},
	InvalidSurname: {
		domain.Ukrainian: "Будь ласка, введіть коректне прізвище (тільки літери, мінімум %d символи).",
		domain.English:   "Please enter a valid surname (letters only, minimum %d characters).",
	},
	InvalidSurnameAny: {
		domain.Ukrainian: "Будь ласка, введіть коректне прізвище (тільки літери).",
		domain.English:   "Please enter a valid surname (letters only).",
	},
	AskBirthDay: {
		domain.Ukrainian: "Будь ласка, введіть день свого народження (1-31):",
		domain.English:   "Please enter the day of your birth (1-31):",
	},
	InvalidBirthDay: {
		domain.Ukrainian: "Невірний формат дня. Будь ласка, введіть число від 1 до 31.",
		domain.English:   "Invalid day format. Please enter a number from 1 to 31.",
	},
	AskBirthMonth: {
		domain.Ukrainian: "Будь ласка, введіть місяць свого народження (1-12):",
		domain.English:   "Please enter the month of your birth (1-12):",
	},
	InvalidBirthMonth: {
		domain.Ukrainian: "Невірний формат місяця. Будь ласка, введіть число від 1 до 12.",
		domain.English:   "Invalid month format. Please enter a number from 1 to 12.",
	},
	AskBirthYear: {
		domain.Ukrainian: "Будь ласка, введіть рік свого народження (1900-%d):",
		domain.English:   "Please enter the year of your birth (1900-%d):",
	},
	InvalidBirthYear: {
		domain.Ukrainian: "Невірний формат року. Будь ласка, введіть рік від 1900 до %d.",
		domain.English:   "Invalid year format. Please enter a year from 1900 to %d.",
	},
	AskPhone: {
		domain.Ukrainian: "Будь ласка, поділіться своїм номером телефону.",
		domain.English:   "Please share your phone number.",
	},
	InvalidPhone: {
		domain.Ukrainian: "Будь ласка, поділіться своїм номером телефону, натиснувши кнопку.",
		domain.English:   "Please share your phone number by pressing the button.",
	},
	LocationInstruction: {
		domain.Ukrainian: "Для участі в марафоні необхідно надати доступ до вашого місцезнаходження.\n" +
			"Будь ласка, увімкніть геолокацію на своєму пристрої перед тим, як натиснути кнопку «Старт».",
		domain.English: "To participate in the marathon, you need to grant access to your location.\n" +
			"Please enable location services on your device before pressing the «Start» button.",
	},
	AskStart: {
		domain.Ukrainian: "Коли Ви будете готові розпочати забіг і увімкнете геолокацію, натисніть кнопку Старт.",
		domain.English:   "When you are ready to start the run and have enabled location services, press the Start button.",
	},
	StartRetry: {
		domain.Ukrainian: "Будь ласка, надайте доступ до вашого місцезнаходження, щоб розпочати забіг.\n" +
			"Перевірте налаштування Telegram та увімкніть геолокацію.",
		domain.English: "Please grant access to your location to start the run.\n" +
			"Check your Telegram settings and enable location services.",
	},
	AskFinish: {
		domain.Ukrainian: "Коли завершите забіг, натисніть кнопку «ФІНІШ».",
		domain.English:   "When you finish the run, press the «FINISH» button.",
	},
	InvalidLocation: {
		domain.Ukrainian: "Не вдалося визначити ваше місцезнаходження. Будь ласка, спробуйте ще раз.",
		domain.English:   "Could not read your location. Please try again.",
	},
	NoStartRecorded: {
		domain.Ukrainian: "Старт ще не зафіксовано. Будь ласка, спочатку натисніть кнопку «СТАРТ».",
		domain.English:   "Your start has not been recorded yet. Please press the «START» button first.",
	},
	Finished: {
		domain.Ukrainian: "🇺🇦 Ваш забіг завершено! Дякуємо за участь у «Марафоні Героїв»! 🇺🇦",
		domain.English:   "🇺🇦 Your run is finished! Thank you for participating in the «Heroes Marathon»! 🇺🇦",
	},
	Website: {
		domain.Ukrainian: "Щоб отримати сертифікат про участь у марафоні та нагороди, потрібно зареєструватись на нашому сайті. " +
			"Для цього натисніть кнопку нижче (для кращої роботи рекомендуємо відкрити у зовнішньому браузері).",
		domain.English: "To receive a certificate of participation in the marathon and a reward, you need to register on our website. " +
			"To do this, press the button below (for better performance, we recommend opening in an external browser).",
	},
	SaveFailed: {
		domain.Ukrainian: "Виникла помилка при збереженні результатів забігу.",
		domain.English:   "An error occurred while saving the run results.",
	},
	AlreadyFinished: {
		domain.Ukrainian: "Ваш забіг уже завершено. Щоб зареєструватися знову, надішліть /start.",
		domain.English:   "Your run is already finished. Send /start to register again.",
	},
	Glory: {
		domain.Ukrainian: "🇺🇦🇺🇦 Героям Слава! 🇺🇦🇺🇦",
		domain.English:   "🇺🇦🇺🇦 Glory to the heroes! 🇺🇦🇺🇦",
	},
	Placeholder: {
		domain.Ukrainian: "Не вказано",
		domain.English:   "Not provided",
	},
	ButtonSkip: {
		domain.Ukrainian: "Пропустити",
		domain.English:   "Skip",
	},
	ButtonShare: {
		domain.Ukrainian: "Поділитись",
		domain.English:   "Share",
	},
	ButtonStart: {
		domain.Ukrainian: "СТАРТ",
		domain.English:   "START",
	},
	ButtonStartRetry: {
		domain.Ukrainian: "Повторити СПРОБУ СТАРТ",
		domain.English:   "Retry START",
	},
	ButtonFinish: {
		domain.Ukrainian: "ФІНІШ",
		domain.English:   "FINISH",
	},
	ButtonWebsite: {
		domain.Ukrainian: "Перейти на сайт",
		domain.English:   "Go to website",
	},
	ButtonAlreadyRegistered: {
		domain.Ukrainian: "Вже зареєструвався",
		domain.English:   "Already registered",
	},
}

// Text looks up key for lang, falling back to English, and formats args into it.
func Text(lang domain.Language, key Key, args ...any) string {
	entry, ok := catalog[key]
	if !ok {
		return string(key)
	}

	s, ok := entry[lang]
	if !ok {
		s = entry[domain.English]
	}

	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

// IsSkip reports whether text is the skip token of any supported language.
func IsSkip(text string) bool {
	text = strings.TrimSpace(text)
	for _, lang := range domain.Languages {
		if text == catalog[ButtonSkip][lang] {
			return true
		}
	}
	return false
}

// LanguageFromButton maps the language keyboard labels to a locale.
func LanguageFromButton(text string) (domain.Language, bool) {
	switch strings.TrimSpace(text) {
	case ButtonUkrainian:
		return domain.Ukrainian, true
	case ButtonEnglish:
		return domain.English, true
	}
	return "", false
}

// Keys lists every catalog key; used to check coverage.
func Keys() []Key {
	keys := make([]Key, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	return keys
}
