package domain

import "errors"

var (
	ErrBlocked = errors.New("identifier is blocked")

	ErrPasswordRequired = errors.New("Le champ password est requis et doit être une chaîne")
)

func IsBlockedError(err error) bool {
	return errors.Is(err, ErrBlocked)
}
