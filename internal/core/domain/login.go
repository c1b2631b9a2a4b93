package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaskChar substitui cada caractere da senha nos logs.
const MaskChar = "*"

// LoginAttempt é uma tentativa de conexão recebida em POST /login.
// Nunca é persistida.
type LoginAttempt struct {
	Login    string
	Password string
}

// MaskedLogin é a forma de LoginAttempt que pode ser registrada.
type MaskedLogin struct {
	Login    string
	Password string
}

// NewLoginAttempt monta a tentativa a partir do corpo JSON já decodificado.
// Login ausente vale "" e login não textual é convertido em texto;
// senha ausente ou não textual é rejeitada.
func NewLoginAttempt(body map[string]any) (LoginAttempt, error) {
	var attempt LoginAttempt

	switch login := body["login"].(type) {
	case nil:
	case string:
		attempt.Login = login
	default:
		attempt.Login = fmt.Sprint(login)
	}

	password, ok := body["password"].(string)
	if !ok {
		return LoginAttempt{}, ErrPasswordRequired
	}
	attempt.Password = password

	return attempt, nil
}

// Masked descarta a senha em claro.
func (a LoginAttempt) Masked() MaskedLogin {
	return MaskedLogin{Login: a.Login, Password: MaskPassword(a.Password)}
}

// MaskPassword devolve um MaskChar por caractere da senha.
func MaskPassword(password string) string {
	return strings.Repeat(MaskChar, utf8.RuneCountInString(password))
}
