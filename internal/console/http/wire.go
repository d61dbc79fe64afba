package http

import (
	"github.com/opsdeck/console/internal/console/domain"
	"github.com/opsdeck/console/pkg/consolesdk"
)

func toWireUser(u domain.User) consolesdk.User {
	return consolesdk.User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Username:  u.Username,
		Verified:  u.Verified,
		Created:   u.CreatedAt,
	}
}

func toWirePage(p domain.UserPage) consolesdk.UserPage {
	rows := make([]consolesdk.User, 0, len(p.Rows))
	for _, u := range p.Rows {
		rows = append(rows, toWireUser(u))
	}
	return consolesdk.UserPage{Count: p.Count, Rows: rows}
}
