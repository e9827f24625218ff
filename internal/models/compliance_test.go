package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComplianceRequirementAppliesTo(t *testing.T) {
	everyone := ComplianceRequirement{}
	require.True(t, everyone.AppliesTo("Assembly", RoleEmployee))
	require.True(t, everyone.AppliesTo("", ""))

	scoped := ComplianceRequirement{Department: "Assembly", Role: RoleEmployee}
	require.True(t, scoped.AppliesTo("Assembly", RoleEmployee))
	require.False(t, scoped.AppliesTo("Warehouse", RoleEmployee))
	require.False(t, scoped.AppliesTo("Assembly", RoleManager))

	byDepartment := ComplianceRequirement{Department: "Warehouse"}
	require.True(t, byDepartment.AppliesTo("Warehouse", RoleManager))
	require.False(t, byDepartment.AppliesTo("Assembly", RoleManager))
}
