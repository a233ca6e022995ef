// Package app provides authentication initialization.
package app

import (
	"context"
	"time"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
	"github.com/rs/zerolog/log"
)

// initializeDefaultRolesAndPermissions creates default roles and permissions if they don't exist.
func initializeDefaultRolesAndPermissions(
	roleRepo repository.RoleRepositoryInterface,
	permissionRepo repository.PermissionRepositoryInterface,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Create default permissions
	permissions := []*model.Permission{
		{Name: "plans:read", Description: "Read meal plans", Resource: "plans", Action: "read", Active: true},
		{Name: "plans:write", Description: "Optimize and save meal plans", Resource: "plans", Action: "write", Active: true},
		{Name: "foods:read", Description: "Read the food catalog", Resource: "foods", Action: "read", Active: true},
		{Name: "foods:write", Description: "Create/update catalog foods", Resource: "foods", Action: "write", Active: true},
		{Name: "targets:read", Description: "Read nutrition targets", Resource: "targets", Action: "read", Active: true},
		{Name: "targets:write", Description: "Update nutrition targets", Resource: "targets", Action: "write", Active: true},
		{Name: "users:read", Description: "Read users", Resource: "users", Action: "read", Active: true},
		{Name: "users:write", Description: "Create/update users", Resource: "users", Action: "write", Active: true},
		{Name: "users:delete", Description: "Delete users", Resource: "users", Action: "delete", Active: true},
		{Name: "roles:read", Description: "Read roles", Resource: "roles", Action: "read", Active: true},
		{Name: "roles:write", Description: "Create/update roles", Resource: "roles", Action: "write", Active: true},
	}

	permissionIDs := make([]string, 0, len(permissions))
	for _, perm := range permissions {
		existing, _ := permissionRepo.FindByResourceAndAction(ctx, perm.Resource, perm.Action)
		if existing == nil {
			if err := permissionRepo.Create(ctx, perm); err != nil {
				log.Warn().Err(err).Str("permission", perm.Name).Msg("Failed to create permission")
				continue
			}
			log.Info().Str("permission", perm.Name).Msg("Created default permission")
		} else {
			perm.ID = existing.ID
		}
		permissionIDs = append(permissionIDs, perm.ID.Hex())
	}

	// Create default roles
	roles := []*model.Role{
		{
			Name:        "user",
			Description: "Standard user role",
			// plans, foods, and targets read/write
			Permissions: permissionIDs[:6],
			Active:      true,
		},
		{
			Name:        "admin",
			Description: "Administrator role with full access",
			Permissions: permissionIDs, // All permissions
			Active:      true,
		},
	}

	for _, role := range roles {
		existing, _ := roleRepo.FindByName(ctx, role.Name)
		if existing == nil {
			if err := roleRepo.Create(ctx, role); err != nil {
				log.Warn().Err(err).Str("role", role.Name).Msg("Failed to create role")
			} else {
				log.Info().Str("role", role.Name).Msg("Created default role")
			}
		}
	}

	return nil
}
