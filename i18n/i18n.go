// Package i18n holds the French and English message catalogs.
package i18n

import (
	"golang.org/x/text/language"
)

const DefaultLang = "fr"

// Supported lists the catalog languages; the first one is the fallback.
var Supported = []string{"fr", "en"}

var matcher = language.NewMatcher([]language.Tag{language.French, language.English})

var catalogs = map[string]map[string]string{
	"fr": {
		"required":             "Requis",
		"must_not_be_negative": "Ne peut pas être négatif",
		"out_of_range":         "Hors limites",
		"invalid_email":        "Adresse e-mail invalide",
		"invalid_choice":       "Valeur non autorisée",
		"invalid_date":         "Date invalide",
		"invalid_url":          "URL invalide",
		"validation_failed":    "Le formulaire contient des erreurs",
		"invalid_json":         "Requête invalide",
		"not_found":            "Élément introuvable",
		"persistence_error":    "L'enregistrement a échoué. Veuillez réessayer.",
		"load_error":           "Impossible de charger les données. Veuillez réessayer.",
		"internal_error":       "Erreur interne",
		"project_created":      "Projet créé",
		"project_updated":      "Projet mis à jour",
		"project_deleted":      "Projet supprimé",
		"project_duplicated":   "Projet dupliqué",
		"client_created":       "Client ajouté",
		"client_updated":       "Client mis à jour",
		"client_deleted":       "Client supprimé",
		"task_created":         "Tâche ajoutée",
		"task_updated":         "Tâche mise à jour",
		"task_deleted":         "Tâche supprimée",
		"note_created":         "Note ajoutée",
		"note_updated":         "Note mise à jour",
		"note_deleted":         "Note supprimée",
		"website_created":      "Site ajouté",
		"website_updated":      "Site mis à jour",
		"website_deleted":      "Site supprimé",
	},
	"en": {
		"required":             "Required",
		"must_not_be_negative": "Cannot be negative",
		"out_of_range":         "Out of range",
		"invalid_email":        "Invalid email address",
		"invalid_choice":       "Value not allowed",
		"invalid_date":         "Invalid date",
		"invalid_url":          "Invalid URL",
		"validation_failed":    "The form contains errors",
		"invalid_json":         "Invalid request",
		"not_found":            "Item not found",
		"persistence_error":    "Saving failed. Please try again.",
		"load_error":           "Could not load data. Please try again.",
		"internal_error":       "Internal error",
		"project_created":      "Project created",
		"project_updated":      "Project updated",
		"project_deleted":      "Project deleted",
		"project_duplicated":   "Project duplicated",
		"client_created":       "Client added",
		"client_updated":       "Client updated",
		"client_deleted":       "Client deleted",
		"task_created":         "Task added",
		"task_updated":         "Task updated",
		"task_deleted":         "Task deleted",
		"note_created":         "Note added",
		"note_updated":         "Note updated",
		"note_deleted":         "Note deleted",
		"website_created":      "Website added",
		"website_updated":      "Website updated",
		"website_deleted":      "Website deleted",
	},
}

// T translates code. Unknown languages use French; unknown codes are
// returned unchanged.
func T(lang, code string) string {
	if msg, ok := catalogs[lang][code]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLang][code]; ok {
		return msg
	}
	return code
}

// TMap translates every value of a field->code map.
func TMap(lang string, codes map[string]string) map[string]string {
	out := make(map[string]string, len(codes))
	for field, code := range codes {
		out[field] = T(lang, code)
	}
	return out
}

// DetectLanguage picks the best catalog for an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLang
	}
	_, index, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLang
	}
	return Supported[index]
}

// IsSupported reports whether lang has a catalog.
func IsSupported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}
