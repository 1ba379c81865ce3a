package console

import (
	"context"
)

func (h *Handler) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("login <username> <password>")
	}
	account, err := h.studio.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	h.closeForms()
	h.printf("logged in as %s (%d bands)\n", account.Username, len(h.studio.Catalog()))
	return nil
}

func (h *Handler) logout(ctx context.Context, args []string) error {
	h.closeForms()
	if err := h.studio.Logout(ctx); err != nil {
		return err
	}
	h.printf("logged out\n")
	return nil
}

func (h *Handler) whoami(ctx context.Context, args []string) error {
	account, ok := h.studio.Current()
	if !ok {
		h.printf("not logged in\n")
		return nil
	}
	h.printf("%s (%s)\n", account.Username, account.ID)
	return nil
}
