package domain

import (
	"golang.org/x/text/cases"
)

// Account is a registered username/password pair and the unit of data ownership.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UsernameKey folds a username into the form used for uniqueness checks.
func UsernameKey(username string) string {
	return cases.Fold().String(username)
}

// FindAccount returns the account whose username matches case-insensitively.
func FindAccount(accounts []Account, username string) (Account, bool) {
	key := UsernameKey(username)
	for _, a := range accounts {
		if UsernameKey(a.Username) == key {
			return a, true
		}
	}
	return Account{}, false
}
