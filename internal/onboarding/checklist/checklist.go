// Package checklist encodes the per-category document requirements for
// onboarding. Evaluate is pure domain logic: no I/O, no side effects, fully
// determined by its inputs.
package checklist

// Category of employee education, fixed at onboarding start.
type Category string

const (
	FormallyEducated    Category = "Formally Educated"
	NonFormallyEducated Category = "Non-Formally Educated"
)

// Valid reports whether the category is one of the two known values.
func (c Category) Valid() bool {
	return c == FormallyEducated || c == NonFormallyEducated
}

// Flags qualify the Formally Educated rule set.
type Flags struct {
	HasPG       bool `json:"hasPg"`
	Experienced bool `json:"experienced"`
}

// SelfDeclaration carries the six structured fields Non-Formally Educated
// candidates fill in. All six must be non-empty for the checklist item to
// complete.
type SelfDeclaration struct {
	Name        string `json:"name"`
	Age         string `json:"age"`
	Address     string `json:"address"`
	Skill       string `json:"skill"`
	Willingness string `json:"willingness"`
	Signature   string `json:"signature"`
}

// Complete reports whether every declaration field is filled.
func (d SelfDeclaration) Complete() bool {
	return d.Name != "" && d.Age != "" && d.Address != "" &&
		d.Skill != "" && d.Willingness != "" && d.Signature != ""
}

// Status of one checklist item.
type Status string

const (
	StatusUploaded  Status = "Uploaded"
	StatusMissing   Status = "Missing"
	StatusOptional  Status = "Optional"
	StatusCompleted Status = "Completed"
)

// Item is one onboarding requirement with its current satisfaction state.
type Item struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	Required      bool   `json:"required"`
	Status        Status `json:"status"`
	UploadedCount int    `json:"uploadedCount"`
	Detail        string `json:"detail,omitempty"`
}

// Result pairs the ordered checklist with the human-readable list of unmet
// required items. Both views derive independently from the same inputs and
// must agree: an item is in Missing exactly when it is required and not
// satisfied.
type Result struct {
	Items   []Item   `json:"items"`
	Missing []string `json:"missing"`
}

// Document keys that satisfy the disjunctive requirements.
var (
	bankDetailKeys = []string{"bank_cheque", "bank_passbook"}
	skillProofKeys = []string{"ngo_letter", "employer_letter", "skill_assessment", "trial_evaluation"}
)

const salarySlipThreshold = 3

const missingCategoryMessage = "Employee category is not selected."

// Uploads maps doc_key → number of uploads recorded under that key.
// Re-uploads all count; the engine never deduplicates.
type Uploads map[string]int

func (u Uploads) total(keys []string) int {
	n := 0
	for _, key := range keys {
		n += u[key]
	}
	return n
}

// Evaluate computes the checklist and missing list for a candidate's current
// onboarding state. With no category chosen the checklist is empty and the
// only missing entry asks for the category.
func Evaluate(category Category, flags Flags, uploads Uploads, decl SelfDeclaration) Result {
	if !category.Valid() {
		return Result{Items: []Item{}, Missing: []string{missingCategoryMessage}}
	}
	return Result{
		Items:   buildItems(category, flags, uploads, decl),
		Missing: buildMissing(category, flags, uploads, decl),
	}
}

func uploadItem(uploads Uploads, key, label string, required bool) Item {
	count := uploads[key]
	status := StatusMissing
	if count > 0 {
		status = StatusUploaded
	} else if !required {
		status = StatusOptional
	}
	return Item{Key: key, Label: label, Required: required, Status: status, UploadedCount: count}
}

func buildItems(category Category, flags Flags, uploads Uploads, decl SelfDeclaration) []Item {
	var items []Item

	switch category {
	case FormallyEducated:
		items = append(items,
			uploadItem(uploads, "aadhaar_card", "Aadhaar Card", true),
			uploadItem(uploads, "pan_card", "PAN Card", true),
			uploadItem(uploads, "address_proof", "Address Proof", true),
			uploadItem(uploads, "edu_10th", "10th Marksheet", true),
			uploadItem(uploads, "edu_12th", "12th Marksheet", true),
			uploadItem(uploads, "edu_grad", "Graduation/Diploma", true),
			uploadItem(uploads, "edu_pg", "Post-Graduation", flags.HasPG),
			uploadItem(uploads, "resume", "Resume/CV", true),
			uploadItem(uploads, "passport_photo", "Passport Photo", true),
		)

		bankCount := uploads.total(bankDetailKeys)
		bankStatus := StatusMissing
		if bankCount > 0 {
			bankStatus = StatusUploaded
		}
		items = append(items, Item{
			Key:           "bank_details",
			Label:         "Bank Details (Cancelled Cheque or Passbook)",
			Required:      true,
			Status:        bankStatus,
			UploadedCount: bankCount,
			Detail:        "Upload at least one of: Cancelled Cheque or Passbook.",
		})

		items = append(items, uploadItem(uploads, "medical_fitness", "Medical Fitness Certificate", true))

		if flags.Experienced {
			items = append(items,
				uploadItem(uploads, "offer_letter", "Offer Letter", true),
				uploadItem(uploads, "relieving_letter", "Relieving/Experience Letter", true),
			)
			salaryCount := uploads["salary_slip"]
			salaryStatus := StatusMissing
			if salaryCount >= salarySlipThreshold {
				salaryStatus = StatusUploaded
			}
			items = append(items, Item{
				Key:           "salary_slip",
				Label:         "Last 3 Salary Slips",
				Required:      true,
				Status:        salaryStatus,
				UploadedCount: salaryCount,
				Detail:        "Upload at least 3 salary slips.",
			})
		}

	case NonFormallyEducated:
		items = append(items,
			uploadItem(uploads, "aadhaar_card", "Aadhaar Card", true),
			uploadItem(uploads, "address_proof", "Address Proof", true),
			uploadItem(uploads, "passport_photo", "Passport Photo", true),
			uploadItem(uploads, "bank_statement", "Bank Details (Passbook/Account Statement)", true),
			uploadItem(uploads, "self_declaration_form", "Self-Declaration Form", true),
		)

		declStatus := StatusMissing
		if decl.Complete() {
			declStatus = StatusCompleted
		}
		items = append(items, Item{
			Key:      "self_declaration_fields",
			Label:    "Self-Declaration Fields",
			Required: true,
			Status:   declStatus,
			Detail:   "Complete the self-declaration form fields.",
		})

		proofCount := uploads.total(skillProofKeys)
		proofStatus := StatusMissing
		if proofCount > 0 {
			proofStatus = StatusUploaded
		}
		items = append(items, Item{
			Key:           "skill_proof",
			Label:         "Skill/Experience Proof (any one)",
			Required:      true,
			Status:        proofStatus,
			UploadedCount: proofCount,
			Detail:        "Upload at least one proof: NGO Letter, Employer Letter, Skill Assessment Sheet, or Internal Trial Evaluation.",
		})

		items = append(items, uploadItem(uploads, "medical_fitness", "Medical Fitness Certificate (Optional)", false))
	}

	return items
}

// buildMissing derives one message per unsatisfied required item, straight
// from the inputs rather than from the item listing. Tests hold the two
// views to agreement.
func buildMissing(category Category, flags Flags, uploads Uploads, decl SelfDeclaration) []string {
	missing := []string{}

	requireUpload := func(key, label string) {
		if uploads[key] == 0 {
			missing = append(missing, label+" is missing.")
		}
	}

	switch category {
	case FormallyEducated:
		requireUpload("aadhaar_card", "Aadhaar Card")
		requireUpload("pan_card", "PAN Card")
		requireUpload("address_proof", "Address Proof")
		requireUpload("edu_10th", "10th Marksheet")
		requireUpload("edu_12th", "12th Marksheet")
		requireUpload("edu_grad", "Graduation/Diploma")
		if flags.HasPG {
			requireUpload("edu_pg", "Post-Graduation")
		}
		requireUpload("resume", "Resume/CV")
		requireUpload("passport_photo", "Passport Photo")
		if uploads.total(bankDetailKeys) == 0 {
			missing = append(missing, "Bank Details (Cancelled Cheque or Passbook) are missing.")
		}
		requireUpload("medical_fitness", "Medical Fitness Certificate")
		if flags.Experienced {
			requireUpload("offer_letter", "Offer Letter")
			requireUpload("relieving_letter", "Relieving/Experience Letter")
			if uploads["salary_slip"] < salarySlipThreshold {
				missing = append(missing, "At least 3 salary slips are required.")
			}
		}

	case NonFormallyEducated:
		requireUpload("aadhaar_card", "Aadhaar Card")
		requireUpload("address_proof", "Address Proof")
		requireUpload("passport_photo", "Passport Photo")
		requireUpload("bank_statement", "Bank Details (Passbook/Account Statement)")
		requireUpload("self_declaration_form", "Self-Declaration Form")
		if !decl.Complete() {
			missing = append(missing, "Self-declaration fields are incomplete.")
		}
		if uploads.total(skillProofKeys) == 0 {
			missing = append(missing, "At least one skill/experience proof document is required.")
		}
	}

	return missing
}
