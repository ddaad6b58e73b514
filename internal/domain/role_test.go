package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoleDefaultsToEmployee(t *testing.T) {
	assert.Equal(t, RoleManager, ParseRole("MANAGER"))
	assert.Equal(t, RoleAdmin, ParseRole("ADMIN"))
	assert.Equal(t, RoleEmployee, ParseRole("EMPLOYEE"))
	assert.Equal(t, RoleEmployee, ParseRole("SOMETHING_ELSE"))
	assert.Equal(t, RoleEmployee, ParseRole(""))
}

func TestRoleScope(t *testing.T) {
	assert.Equal(t, TicketScope{All: true}, RoleAdmin.Scope(1, "Root"))
	assert.Equal(t, TicketScope{All: true}, RoleFieldService.Scope(1, "Tech"))
	assert.Equal(t, TicketScope{RequesterID: 77, ManagerName: "Bruno Lima"}, RoleManager.Scope(77, "Bruno Lima"))
	assert.Equal(t, TicketScope{RequesterID: 42}, RoleEmployee.Scope(42, "Alice Souza"))
	assert.Equal(t, TicketScope{RequesterID: 88}, RoleAnalyst.Scope(88, "Carla Dias"))
}

func TestRoleCanView(t *testing.T) {
	ticket := &Ticket{Number: 1, RequesterID: 42, Manager: "Bruno Lima"}

	assert.True(t, RoleAdmin.CanView(1, "Root", ticket))
	assert.True(t, RoleFieldService.CanView(1, "Tech", ticket))

	assert.True(t, RoleManager.CanView(77, "Bruno Lima", ticket))
	assert.False(t, RoleManager.CanView(77, "Gina Rocha", ticket))
	assert.True(t, RoleManager.CanView(42, "Gina Rocha", ticket))

	assert.True(t, RoleEmployee.CanView(42, "Alice Souza", ticket))
	assert.False(t, RoleEmployee.CanView(55, "Diego Reis", ticket))
}
