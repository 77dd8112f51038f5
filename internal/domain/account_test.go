package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccount_Validate(t *testing.T) {
	assert.NoError(t, Account{}.Validate())
	assert.NoError(t, Account{Name: "John Doe", Email: "john@company.com"}.Validate())
	assert.Error(t, Account{Name: "John Doe", Email: "john at company"}.Validate())
}

func TestAccount_IsZero(t *testing.T) {
	assert.True(t, Account{}.IsZero())
	assert.False(t, Account{Phone: "+1 (555) 123-4567"}.IsZero())
}
