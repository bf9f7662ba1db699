package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeDeclaration() SelfDeclaration {
	return SelfDeclaration{
		Name:        "Ravi Kumar",
		Age:         "24",
		Address:     "12 Market Road",
		Skill:       "Cooking",
		Willingness: "Yes",
		Signature:   "Ravi",
	}
}

func feUploads() Uploads {
	return Uploads{
		"aadhaar_card":    1,
		"pan_card":        1,
		"address_proof":   1,
		"edu_10th":        1,
		"edu_12th":        1,
		"edu_grad":        1,
		"resume":          1,
		"passport_photo":  1,
		"bank_cheque":     1,
		"medical_fitness": 1,
	}
}

func TestEvaluateNoCategory(t *testing.T) {
	result := Evaluate("", Flags{}, Uploads{}, SelfDeclaration{})

	assert.Empty(t, result.Items)
	require.Len(t, result.Missing, 1)
	assert.Equal(t, "Employee category is not selected.", result.Missing[0])
}

func TestEvaluateUnknownCategory(t *testing.T) {
	result := Evaluate(Category("Contractor"), Flags{}, Uploads{}, SelfDeclaration{})

	assert.Empty(t, result.Items)
	assert.Equal(t, []string{"Employee category is not selected."}, result.Missing)
}

func TestFormallyEducatedComplete(t *testing.T) {
	result := Evaluate(FormallyEducated, Flags{}, feUploads(), SelfDeclaration{})

	assert.Empty(t, result.Missing)
	for _, item := range result.Items {
		if item.Required {
			assert.Equal(t, StatusUploaded, item.Status, "item %s", item.Key)
		}
	}
}

func TestFormallyEducatedPGFlag(t *testing.T) {
	uploads := feUploads()

	// Without the flag the PG item is optional and never blocks.
	result := Evaluate(FormallyEducated, Flags{}, uploads, SelfDeclaration{})
	assert.Empty(t, result.Missing)
	pg := itemByKey(t, result.Items, "edu_pg")
	assert.False(t, pg.Required)
	assert.Equal(t, StatusOptional, pg.Status)

	// With the flag it becomes required and missing.
	result = Evaluate(FormallyEducated, Flags{HasPG: true}, uploads, SelfDeclaration{})
	assert.Contains(t, result.Missing, "Post-Graduation is missing.")
	pg = itemByKey(t, result.Items, "edu_pg")
	assert.True(t, pg.Required)
	assert.Equal(t, StatusMissing, pg.Status)

	uploads["edu_pg"] = 1
	result = Evaluate(FormallyEducated, Flags{HasPG: true}, uploads, SelfDeclaration{})
	assert.Empty(t, result.Missing)
}

func TestBankDetailsDisjunction(t *testing.T) {
	uploads := feUploads()
	delete(uploads, "bank_cheque")

	result := Evaluate(FormallyEducated, Flags{}, uploads, SelfDeclaration{})
	assert.Contains(t, result.Missing, "Bank Details (Cancelled Cheque or Passbook) are missing.")

	// Either key alone satisfies the requirement.
	uploads["bank_passbook"] = 1
	result = Evaluate(FormallyEducated, Flags{}, uploads, SelfDeclaration{})
	assert.Empty(t, result.Missing)
	bank := itemByKey(t, result.Items, "bank_details")
	assert.Equal(t, StatusUploaded, bank.Status)
	assert.Equal(t, 1, bank.UploadedCount)
}

func TestExperiencedSalarySlipThreshold(t *testing.T) {
	uploads := feUploads()
	uploads["offer_letter"] = 1
	uploads["relieving_letter"] = 1
	uploads["salary_slip"] = 2

	result := Evaluate(FormallyEducated, Flags{Experienced: true}, uploads, SelfDeclaration{})
	assert.Contains(t, result.Missing, "At least 3 salary slips are required.")
	slips := itemByKey(t, result.Items, "salary_slip")
	assert.Equal(t, StatusMissing, slips.Status)
	assert.Equal(t, 2, slips.UploadedCount)

	uploads["salary_slip"] = 3
	result = Evaluate(FormallyEducated, Flags{Experienced: true}, uploads, SelfDeclaration{})
	assert.Empty(t, result.Missing)
}

func TestExperienceItemsAbsentWithoutFlag(t *testing.T) {
	result := Evaluate(FormallyEducated, Flags{}, feUploads(), SelfDeclaration{})

	for _, item := range result.Items {
		assert.NotEqual(t, "offer_letter", item.Key)
		assert.NotEqual(t, "relieving_letter", item.Key)
		assert.NotEqual(t, "salary_slip", item.Key)
	}
}

func TestNonFormallyEducatedComplete(t *testing.T) {
	uploads := Uploads{
		"aadhaar_card":          1,
		"address_proof":         1,
		"passport_photo":        1,
		"bank_statement":        1,
		"self_declaration_form": 1,
		"ngo_letter":            1,
	}

	result := Evaluate(NonFormallyEducated, Flags{}, uploads, completeDeclaration())
	assert.Empty(t, result.Missing)

	decl := itemByKey(t, result.Items, "self_declaration_fields")
	assert.Equal(t, StatusCompleted, decl.Status)

	medical := itemByKey(t, result.Items, "medical_fitness")
	assert.False(t, medical.Required)
	assert.Equal(t, StatusOptional, medical.Status)
}

func TestNonFormallyEducatedSkillProofDisjunction(t *testing.T) {
	uploads := Uploads{
		"aadhaar_card":          1,
		"address_proof":         1,
		"passport_photo":        1,
		"bank_statement":        1,
		"self_declaration_form": 1,
	}

	result := Evaluate(NonFormallyEducated, Flags{}, uploads, completeDeclaration())
	assert.Equal(t, []string{"At least one skill/experience proof document is required."}, result.Missing)

	// Any one of the four proof keys satisfies it.
	for _, key := range []string{"ngo_letter", "employer_letter", "skill_assessment", "trial_evaluation"} {
		withProof := Uploads{}
		for k, v := range uploads {
			withProof[k] = v
		}
		withProof[key] = 1
		result = Evaluate(NonFormallyEducated, Flags{}, withProof, completeDeclaration())
		assert.Empty(t, result.Missing, "proof key %s", key)
	}
}

func TestNonFormallyEducatedIncompleteDeclaration(t *testing.T) {
	decl := completeDeclaration()
	decl.Signature = ""

	result := Evaluate(NonFormallyEducated, Flags{}, Uploads{}, decl)
	assert.Contains(t, result.Missing, "Self-declaration fields are incomplete.")

	item := itemByKey(t, result.Items, "self_declaration_fields")
	assert.Equal(t, StatusMissing, item.Status)
}

func TestCategorySwitchReinterpretsUploads(t *testing.T) {
	// The same upload ledger produces a different checklist per category; no
	// uploads are lost or carried as stale items.
	uploads := Uploads{"aadhaar_card": 1, "pan_card": 1}

	fe := Evaluate(FormallyEducated, Flags{}, uploads, SelfDeclaration{})
	nfe := Evaluate(NonFormallyEducated, Flags{}, uploads, SelfDeclaration{})

	assert.Equal(t, 1, itemByKey(t, fe.Items, "pan_card").UploadedCount)
	for _, item := range nfe.Items {
		assert.NotEqual(t, "pan_card", item.Key)
	}
	assert.Equal(t, 1, itemByKey(t, nfe.Items, "aadhaar_card").UploadedCount)
}

// TestItemsAndMissingAgree holds the two independently derived views to the
// shared definition: a required item is unsatisfied exactly when Missing has
// an entry for it.
func TestItemsAndMissingAgree(t *testing.T) {
	cases := []struct {
		name     string
		category Category
		flags    Flags
		uploads  Uploads
		decl     SelfDeclaration
	}{
		{"fe empty", FormallyEducated, Flags{}, Uploads{}, SelfDeclaration{}},
		{"fe complete", FormallyEducated, Flags{}, feUploads(), SelfDeclaration{}},
		{"fe pg experienced", FormallyEducated, Flags{HasPG: true, Experienced: true}, feUploads(), SelfDeclaration{}},
		{"nfe empty", NonFormallyEducated, Flags{}, Uploads{}, SelfDeclaration{}},
		{"nfe partial", NonFormallyEducated, Flags{}, Uploads{"aadhaar_card": 1, "employer_letter": 2}, completeDeclaration()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Evaluate(tc.category, tc.flags, tc.uploads, tc.decl)

			unsatisfied := 0
			for _, item := range result.Items {
				if item.Required && item.Status != StatusUploaded && item.Status != StatusCompleted {
					unsatisfied++
				}
			}
			assert.Equal(t, unsatisfied, len(result.Missing))
		})
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	uploads := Uploads{"aadhaar_card": 2, "salary_slip": 3}
	first := Evaluate(FormallyEducated, Flags{Experienced: true}, uploads, SelfDeclaration{})
	second := Evaluate(FormallyEducated, Flags{Experienced: true}, uploads, SelfDeclaration{})

	assert.Equal(t, first, second)
}

func itemByKey(t *testing.T, items []Item, key string) Item {
	t.Helper()
	for _, item := range items {
		if item.Key == key {
			return item
		}
	}
	t.Fatalf("item %q not found", key)
	return Item{}
}
