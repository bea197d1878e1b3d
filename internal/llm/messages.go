package llm

import (
	"errors"

	"github.com/varsilias/crystal/internal/upstream"
)

const (
	MsgNoAPIKey   = "Desculpe, a chave da API do Gemini não está configurada corretamente. Não posso responder no momento."
	MsgBlocked    = "Sua solicitação foi bloqueada devido a políticas de segurança. Por favor, tente algo diferente."
	MsgAPI        = "Desculpe, tive um problema ao me comunicar com a IA. Pode tentar novamente?"
	MsgTimeout    = "A IA demorou muito para responder e a requisição expirou. Tente novamente."
	MsgConnection = "Não foi possível conectar ao serviço de IA. Verifique sua conexão com a internet."
	MsgDecode     = "Desculpe, recebi uma resposta inválida da IA. Tente novamente."
	MsgUnexpected = "Desculpe, algo deu errado enquanto eu pensava. Tente novamente mais tarde."
)

// Apology maps a Complete error to the message shown to the user.
func Apology(err error) string {
	var aerr *APIError
	switch {
	case errors.Is(err, ErrNoAPIKey):
		return MsgNoAPIKey
	case errors.Is(err, ErrBlocked):
		return MsgBlocked
	case errors.As(err, &aerr):
		return MsgAPI
	case errors.Is(err, upstream.ErrTimeout):
		return MsgTimeout
	case errors.Is(err, upstream.ErrConnection):
		return MsgConnection
	case errors.Is(err, upstream.ErrDecode), errors.Is(err, ErrEmpty):
		return MsgDecode
	default:
		return MsgUnexpected
	}
}
