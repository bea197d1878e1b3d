package weather

import (
	"errors"
	"fmt"

	"github.com/varsilias/crystal/internal/upstream"
)

const (
	MsgNoAPIKey     = "Desculpe, a chave da API do OpenWeatherMap não está configurada."
	MsgUnauthorized = "Erro de autenticação na API do tempo. Verifique sua OPENWEATHER_API_KEY."
	MsgNotFound     = "Não consegui encontrar informações de tempo para essa cidade. Verifique o nome e tente novamente."
	MsgConnection   = "Não foi possível conectar ao serviço de tempo. Verifique sua conexão com a internet."
	MsgTimeout      = "A requisição de tempo demorou muito e expirou. Tente novamente."
	MsgDecode       = "Erro ao processar a resposta do serviço de tempo. O formato dos dados está inválido."
	MsgUnexpected   = "Ocorreu um erro inesperado ao buscar o tempo. Tente novamente."
	MsgMissingCity  = "Por favor, especifique a cidade para a qual você quer o tempo."
)

// Apology maps a Current error to the message shown to the user.
func Apology(err error) string {
	var (
		herr *upstream.HTTPError
		aerr *APIError
	)
	switch {
	case errors.Is(err, ErrNoAPIKey):
		return MsgNoAPIKey
	case errors.Is(err, ErrUnauthorized):
		return MsgUnauthorized
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	case errors.Is(err, upstream.ErrTimeout):
		return MsgTimeout
	case errors.Is(err, upstream.ErrConnection):
		return MsgConnection
	case errors.Is(err, upstream.ErrDecode):
		return MsgDecode
	case errors.As(err, &herr):
		return fmt.Sprintf("Erro HTTP ao buscar o tempo: %d - %s", herr.Status, herr.Reason())
	case errors.As(err, &aerr):
		msg := aerr.Message
		if msg == "" {
			msg = "Erro desconhecido"
		}
		return fmt.Sprintf("Erro ao buscar o tempo: %s. Código: %s", msg, aerr.Code)
	default:
		return MsgUnexpected
	}
}
