package domain_test

import (
	"testing"

	"github.com/claimpilot/claims_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func allGatesPass() domain.EligibilityFlags {
	return domain.EligibilityFlags{
		CategoryProofValid:   true,
		EmployeeIDVerified:   true,
		MedicalCardValid:     true,
		RelationshipVerified: true,
		WithinClaimLimit:     true,
		TreatmentCovered:     true,
	}
}

func TestDeriveEligibilityStatus_IdentityGateOverridesProposed(t *testing.T) {
	flags := allGatesPass()
	flags.MedicalCardValid = false

	status, reasons := domain.DeriveEligibilityStatus(flags, domain.Eligible)

	assert.Equal(t, domain.NotEligible, status)
	assert.Equal(t, []string{"medical card is not valid"}, reasons)
}

func TestDeriveEligibilityStatus_AllIdentityGatesFail(t *testing.T) {
	status, reasons := domain.DeriveEligibilityStatus(domain.EligibilityFlags{}, domain.Conditional)

	assert.Equal(t, domain.NotEligible, status)
	assert.Len(t, reasons, 3)
}

func TestDeriveEligibilityStatus_EmptyProposedDefaultsToEligible(t *testing.T) {
	status, reasons := domain.DeriveEligibilityStatus(allGatesPass(), "")

	assert.Equal(t, domain.Eligible, status)
	assert.Empty(t, reasons)
}

func TestDeriveEligibilityStatus_ProposedPassesThroughWhenGatesPass(t *testing.T) {
	status, reasons := domain.DeriveEligibilityStatus(allGatesPass(), domain.Conditional)

	assert.Equal(t, domain.Conditional, status)
	assert.Empty(t, reasons)
}
