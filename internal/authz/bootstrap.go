package authz

// RoleSeed declares the default permissions of a builtin role.
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds returns the default warehouse roles. Admin is not
// seeded: the middleware bypasses the gate for admin accounts. Zerleger
// has a role but no workflow permissions; disassembly work happens
// outside this service.
func BuiltinRoleSeeds() []RoleSeed {
	selfService := []Policy{
		{Object: "/staff/me", Action: "GET"},
		{Object: "/staff/password", Action: "PUT"},
	}
	return []RoleSeed{
		{
			Role: "kommissionierung",
			Policies: append([]Policy{
				{Object: "/staff/orders", Action: "GET"},
				{Object: "/staff/orders/:id", Action: "GET"},
				{Object: "/staff/orders/:id/events", Action: "GET"},
				{Object: "/staff/orders/:id/claim-picking", Action: "POST"},
				{Object: "/staff/orders/:id/positions/:pos_id/complete", Action: "PUT"},
				{Object: "/staff/orders/:id/complete-picking", Action: "POST"},
			}, selfService...),
		},
		{
			Role: "kontrolle",
			Policies: append([]Policy{
				{Object: "/staff/orders", Action: "GET"},
				{Object: "/staff/orders/:id", Action: "GET"},
				{Object: "/staff/orders/:id/events", Action: "GET"},
				{Object: "/staff/orders/:id/claim-control", Action: "POST"},
				{Object: "/staff/orders/:id/complete-control", Action: "POST"},
			}, selfService...),
		},
		{
			Role:     "zerleger",
			Policies: selfService,
		},
	}
}

// SeedBuiltinRoles ensures the builtin roles and their default policies
// exist. Existing rows are left untouched, so operator customizations
// survive restarts.
func (s *Service) SeedBuiltinRoles() error {
	for _, seed := range BuiltinRoleSeeds() {
		if _, err := s.EnsureRole(seed.Role); err != nil {
			return err
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(seed.Role, policy.Object, policy.Action); err != nil {
				return err
			}
		}
	}
	return nil
}
