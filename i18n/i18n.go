// Package i18n holds the pt-PT wording used by pages, validation messages and contract dates.
package i18n

import (
	"fmt"
	"time"
)

// Locale is the only locale served.
const Locale = "pt-PT"

var messages = map[string]string{
	"required":              "Obrigatório",
	"invalid_email":         "E-mail inválido",
	"invalid_plan":          "Plano inválido",
	"signature_required":    "Por favor, assine o contrato antes de finalizar",
	"signature_invalid":     "Não foi possível ler a assinatura",
	"invalid_transition":    "Passo inválido",
	"invalid_password":      "Senha incorreta",
	"not_found":             "Contrato não encontrado",
	"pdf_failed":            "Erro ao gerar contrato. Por favor, contacte o suporte.",
	"forbidden":             "Acesso negado",
	"settings_saved":        "Configurações guardadas",
	"invalid_setting":       "Configuração desconhecida",
	"save_failed":           "Não foi possível guardar o contrato. Tente novamente.",
	"step_identity":         "Dados Pessoais",
	"step_plan":             "Escolha do Plano",
	"step_signature":        "Assinatura",
	"step_success":          "Concluído",
	"field_name":            "Nome Completo",
	"field_tax_id":          "NIF",
	"field_email":           "E-mail",
	"field_whatsapp":        "WhatsApp",
	"field_address":         "Endereço Completo",
	"contratada_nome":       "Nome da empresa",
	"contratada_nif":        "NIF da empresa",
	"contratada_endereco":   "Sede da empresa",
	"contracts_title":       "Contratos",
	"settings_title":        "Configurações",
	"search_placeholder":    "Pesquisar por nome",
	"download_pdf":          "Descarregar PDF",
	"enrollment_complete":   "Adesão concluída",
	"annual_savings_prefix": "Poupança anual de",
}

var months = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// T returns the message for code, or the code itself when unknown.
func T(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}

// MonthName returns the lower-case month name.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return months[m-1]
}

// LongDate formats t as "18 de outubro de 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), MonthName(t.Month()), t.Year())
}

// DateTime formats t as "18/10/2026 14:05".
func DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
