package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

func (a *App) Addresses(ctx context.Context, _ []string) error {
	list, err := a.svc.Addresses.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No saved addresses. Add one with 'addaddress'.\n")
		return nil
	}
	for _, addr := range list {
		printAddress(a, addr)
	}
	return nil
}

// AddAddress prompts for a new shipping address.
func (a *App) AddAddress(ctx context.Context, _ []string) error {
	var (
		p   models.CreateShippingAddressPayload
		err error
	)
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Full name", &p.FullName},
		{"Phone", &p.Phone},
		{"Street address", &p.Address},
		{"City / district", &p.City},
		{"Province", &p.Province},
		{"Postal code (optional)", &p.PostalCode},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}
	def, err := getSimpleText(a.reader, "Make it the default address? (y/N)", a.out)
	if err != nil {
		return err
	}
	p.IsDefault = yes(def)

	addr, err := a.svc.Addresses.Create(ctx, p)
	if err != nil {
		return err
	}
	a.printf("Address #%d saved.\n", addr.ID)
	return nil
}

// EditAddress prompts for each field of a saved address; empty answers
// keep the current value and are not sent.
func (a *App) EditAddress(ctx context.Context, args []string) error {
	id, err := oneID(args, "editaddress <id>")
	if err != nil {
		return err
	}
	cur, err := a.svc.Addresses.Find(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		a.printf("Address #%d not found.\n", id)
		return nil
	}

	postal := ""
	if cur.PostalCode != nil {
		postal = *cur.PostalCode
	}
	var p models.UpdateShippingAddressPayload
	fields := []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"Full name", cur.FullName, &p.FullName},
		{"Phone", cur.Phone, &p.Phone},
		{"Street address", cur.Address, &p.Address},
		{"City / district", cur.City, &p.City},
		{"Province", cur.Province, &p.Province},
		{"Postal code", postal, &p.PostalCode},
	}
	for _, f := range fields {
		v, err := GetTextOrKeep(a.reader, f.prompt, f.current, a.out)
		if err != nil {
			return err
		}
		if v != f.current {
			*f.dst = &v
		}
	}

	updated, err := a.svc.Addresses.Update(ctx, id, p)
	if err != nil {
		return err
	}
	a.printf("Address #%d updated.\n", updated.ID)
	return nil
}

func (a *App) DeleteAddress(ctx context.Context, args []string) error {
	id, err := oneID(args, "deladdress <id>")
	if err != nil {
		return err
	}
	if err := a.svc.Addresses.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Address #%d deleted.\n", id)
	return nil
}

func (a *App) DefaultAddress(ctx context.Context, args []string) error {
	id, err := oneID(args, "defaultaddress <id>")
	if err != nil {
		return err
	}
	addr, err := a.svc.Addresses.SetDefault(ctx, id)
	if err != nil {
		return err
	}
	a.printf("Address #%d is now the default.\n", addr.ID)
	return nil
}

func printAddress(a *App, addr models.ShippingAddress) {
	marker := " "
	if addr.IsDefault {
		marker = "*"
	}
	a.printf("%s #%-4d %s, %s\n        %s, %s, %s\n", marker, addr.ID, addr.FullName, addr.Phone, addr.Address, addr.City, addr.Province)
}

func yes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "y" || s == "yes"
}
