package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	completo := &User{FirstName: "Karim", LastName: "Hossain", Phone: "01712345678"}
	assert.Equal(t, "Karim Hossain", completo.FullName())

	soloNombre := &User{FirstName: "Karim", Phone: "01712345678"}
	assert.Equal(t, "Karim", soloNombre.FullName())

	sinNombre := &User{Phone: "01712345678"}
	assert.Equal(t, "01712345678", sinNombre.FullName(), "sin nombre cae al teléfono")
}

func TestIsValidRole(t *testing.T) {
	for _, r := range []string{RoleAdmin, RoleManager, RoleStaff, RoleSuperAdmin, RoleCustomer, RoleOther} {
		assert.True(t, IsValidRole(r), r)
	}
	assert.False(t, IsValidRole("admin"), "los roles van en mayúsculas")
	assert.False(t, IsValidRole("ROOT"))
	assert.False(t, IsValidRole(""))
}
