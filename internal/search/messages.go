package search

import (
	"errors"
	"fmt"

	"github.com/varsilias/crystal/internal/upstream"
)

const (
	MsgNoAPIKey     = "Desculpe, as chaves da API de busca do Google (ou o CSE ID) não estão configuradas."
	MsgForbidden    = "Erro de acesso à API de busca. Verifique se sua GOOGLE_SEARCH_API_KEY e GOOGLE_CSE_ID estão corretos e se você habilitou a API Custom Search no Google Cloud."
	MsgBadRequest   = "Requisição de busca inválida. O parâmetro 'q' (query) pode estar faltando ou incorreto."
	MsgConnection   = "Não foi possível conectar ao serviço de busca. Verifique sua conexão com a internet."
	MsgTimeout      = "A requisição de busca demorou muito e expirou. Tente novamente."
	MsgDecode       = "Erro ao processar a resposta do serviço de busca. O formato dos dados está inválido."
	MsgUnexpected   = "Ocorreu um erro inesperado ao realizar a busca. Tente novamente."
	MsgMissingQuery = "Por favor, especifique o que você gostaria de pesquisar na internet."
	MsgNoResults    = "Não encontrei resultados para sua busca na internet. Tente reformular a pergunta."
)

// Apology maps a Search error to the message shown to the user.
func Apology(err error) string {
	var (
		herr *upstream.HTTPError
		aerr *APIError
	)
	switch {
	case errors.Is(err, ErrNoAPIKey):
		return MsgNoAPIKey
	case errors.Is(err, ErrForbidden):
		return MsgForbidden
	case errors.Is(err, ErrBadRequest):
		return MsgBadRequest
	case errors.Is(err, upstream.ErrTimeout):
		return MsgTimeout
	case errors.Is(err, upstream.ErrConnection):
		return MsgConnection
	case errors.Is(err, upstream.ErrDecode):
		return MsgDecode
	case errors.As(err, &herr):
		return fmt.Sprintf("Erro HTTP ao realizar a busca: %d - %s", herr.Status, herr.Reason())
	case errors.As(err, &aerr):
		msg := aerr.Message
		if msg == "" {
			msg = "Erro desconhecido da API de busca."
		}
		return fmt.Sprintf("Erro da API de busca: %s (Código: %d)", msg, aerr.Code)
	default:
		return MsgUnexpected
	}
}
