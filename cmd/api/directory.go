package main

import (
	"context"

	"github.com/google/uuid"

	"fairclaim/portal-backend/internal/auth"
	"fairclaim/portal-backend/internal/cases"
	"fairclaim/portal-backend/internal/verification"
)

// userDirectory resolves token identities to full user records for the
// modules that need more than the user id from the JWT.
type userDirectory struct {
	users auth.Service
}

func (d *userDirectory) Lookup(ctx context.Context, id uuid.UUID) (cases.Actor, error) {
	u, err := d.users.GetProfile(ctx, id)
	if err != nil {
		return cases.Actor{}, err
	}
	return cases.Actor{
		UserID:   u.ID,
		Role:     u.Role,
		FullName: u.FullName,
		Phone:    u.Phone,
		Email:    u.Email,
	}, nil
}

func (d *userDirectory) Profile(ctx context.Context, userID uuid.UUID) (verification.Profile, error) {
	u, err := d.users.GetProfile(ctx, userID)
	if err != nil {
		return verification.Profile{}, err
	}
	return verification.Profile{
		Email:         u.Email,
		FullName:      u.FullName,
		AadhaarNumber: u.AadhaarNumber,
		Address:       u.Address,
	}, nil
}
