// Package i18n renders the stable message keys emitted by the wizard core
// into user-facing text. The core never formats prose itself; it hands over
// a key plus structured params and this package does the rest.
package i18n

import (
	"fmt"
	"strings"
)

type Params map[string]any

var catalogs = map[string]map[string]string{
	"pt": {
		"participant.name.required":        "Informe o nome",
		"participant.name.invalid":         "Nome muito curto",
		"participant.phone.required":       "Informe o telefone",
		"participant.phone.invalid":        "Telefone incompleto",
		"participant.birth_date.required":  "Informe a data de nascimento",
		"participant.birth_date.invalid":   "Data de nascimento inválida",
		"participant.national_id.required": "Informe o CPF",
		"participant.national_id.invalid":  "CPF inválido",
		"participant.gender.required":      "Informe o gênero",
		"participant.gender.invalid":       "Gênero inválido",

		"wizard.participant_invalid":        "Participante {index}: {message}",
		"wizard.fill_required_fields":       "Preencha os campos obrigatórios",
		"wizard.experience_capacity_short":  "Quantidade de participantes insuficiente para a experiência {experience}",
		"wizard.experience_missing_dates":   "Datas não informadas para a experiência {experience}",
		"reservation.submitted":             "Reserva enviada com sucesso",
		"reservation.submit_failed_generic": "Não foi possível enviar a reserva",
		"address.not_found":                 "CEP não encontrado",
	},
	"en": {
		"participant.name.required":        "Name is required",
		"participant.name.invalid":         "Name is too short",
		"participant.phone.required":       "Phone is required",
		"participant.phone.invalid":        "Phone number is incomplete",
		"participant.birth_date.required":  "Birth date is required",
		"participant.birth_date.invalid":   "Birth date is invalid",
		"participant.national_id.required": "National ID is required",
		"participant.national_id.invalid":  "National ID is invalid",
		"participant.gender.required":      "Gender is required",
		"participant.gender.invalid":       "Gender is invalid",

		"wizard.participant_invalid":        "Participant {index}: {message}",
		"wizard.fill_required_fields":       "Fill in the required fields",
		"wizard.experience_capacity_short":  "Not enough participants allocated for experience {experience}",
		"wizard.experience_missing_dates":   "Missing dates for experience {experience}",
		"reservation.submitted":             "Reservation submitted successfully",
		"reservation.submit_failed_generic": "Could not submit the reservation",
		"address.not_found":                 "Postal code not found",
	},
}

type Translator struct {
	locale string
}

// New returns a translator for the given locale, falling back to "pt" for
// locales without a catalog.
func New(locale string) *Translator {
	if _, ok := catalogs[locale]; !ok {
		locale = "pt"
	}
	return &Translator{locale: locale}
}

// T resolves a message key and interpolates {name} placeholders from params.
// Unknown keys come back verbatim so a missing entry is visible, not silent.
func (t *Translator) T(key string, params Params) string {
	msg, ok := catalogs[t.locale][key]
	if !ok {
		return key
	}
	for name, value := range params {
		msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprintf("%v", value))
	}
	return msg
}
