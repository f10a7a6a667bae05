package extraction

import (
	"strings"

	"matterdesk/internal/domain"
)

// Field identifies one semantic category of an extraction result.
type Field string

const (
	FieldParties              Field = "parties"
	FieldKeyDates             Field = "key_dates"
	FieldFinancialTerms       Field = "financial_terms"
	FieldKeyObligations       Field = "key_obligations"
	FieldTerminationClauses   Field = "termination_clauses"
	FieldIPClauses            Field = "intellectual_property_clauses"
	FieldConfidentialityTerms Field = "confidentiality_terms"
	FieldGoverningLaw         Field = "governing_law"
	FieldContractType         Field = "contract_type"
	FieldSummary              Field = "summary"
)

// strategy selects how a raw model response is parsed.
type strategy int

const (
	strategyList strategy = iota
	strategyDates
	strategyFinancial
	strategyScalar
)

// noneSentinel is the "nothing found" answer shared by every list prompt.
const noneSentinel = "None"

// fieldSpec drives the prompt and the parsing of one field. Sentinels are
// the exact "nothing found" answers its prompt asks the model to give.
type fieldSpec struct {
	Field     Field
	Task      string
	Rules     []string
	Label     string
	Sentinels []string
	Strategy  strategy
	Default   string
}

var fieldSpecs = []fieldSpec{
	{
		Field: FieldParties,
		Task:  "Extract all parties involved in this contract.",
		Rules: []string{
			"Return ONLY the party names, one per line",
			`Include full legal entity names (e.g., "Company Name, Inc.", "John Doe", "ABC Corp.")`,
			"Do not include any explanations or additional text",
			`If no clear parties are found, return "Unknown Party"`,
		},
		Label:     "Parties",
		Sentinels: []string{noneSentinel, "Unknown Party"},
		Strategy:  strategyList,
	},
	{
		Field: FieldKeyDates,
		Task:  "Extract all important dates from this contract.",
		Rules: []string{
			"Return dates in the format: YYYY-MM-DD|Description|Original Text",
			"Include effective dates, expiration dates, deadlines, renewal dates, etc.",
			"One date per line",
			`If no dates are found, return "None"`,
		},
		Label:     "Key Dates",
		Sentinels: []string{noneSentinel},
		Strategy:  strategyDates,
	},
	{
		Field: FieldFinancialTerms,
		Task:  "Extract all financial terms and amounts from this contract.",
		Rules: []string{
			"Return in format: Amount|Currency|Description|Original Text|IsRecurring|PaymentFrequency",
			"Use a three-letter ISO currency code; use USD if not specified",
			"IsRecurring should be true/false",
			`PaymentFrequency should be "monthly", "yearly", "one-time", etc.`,
			"One financial term per line",
			`If no financial terms found, return "None"`,
		},
		Label:     "Financial Terms",
		Sentinels: []string{noneSentinel},
		Strategy:  strategyFinancial,
	},
	{
		Field: FieldKeyObligations,
		Task:  "Extract the key obligations and responsibilities from this contract.",
		Rules: []string{
			"Return ONLY the obligation descriptions, one per line",
			"Focus on main duties, deliverables, and responsibilities",
			"Keep descriptions concise but complete",
			"Do not include any explanations",
			`If no clear obligations found, return "No specific obligations identified"`,
		},
		Label:     "Key Obligations",
		Sentinels: []string{noneSentinel, "No specific obligations identified"},
		Strategy:  strategyList,
	},
	{
		Field: FieldTerminationClauses,
		Task:  "Extract all termination clauses and conditions from this contract.",
		Rules: []string{
			"Return ONLY the termination conditions, one per line",
			"Include notice periods, breach conditions, and termination procedures",
			"Keep descriptions clear and concise",
			"Do not include any explanations",
			`If no termination clauses found, return "No termination clauses specified"`,
		},
		Label:     "Termination Clauses",
		Sentinels: []string{noneSentinel, "No termination clauses specified"},
		Strategy:  strategyList,
	},
	{
		Field: FieldIPClauses,
		Task:  "Extract all intellectual property clauses from this contract.",
		Rules: []string{
			"Return ONLY IP-related clauses, one per line",
			"Include copyright, trademark, patent, trade secret provisions",
			"Focus on ownership, licensing, and usage rights",
			"Do not include any explanations",
			`If no IP clauses found, return "No intellectual property clauses specified"`,
		},
		Label:     "Intellectual Property Clauses",
		Sentinels: []string{noneSentinel, "No intellectual property clauses specified"},
		Strategy:  strategyList,
	},
	{
		Field: FieldConfidentialityTerms,
		Task:  "Extract all confidentiality and non-disclosure terms from this contract.",
		Rules: []string{
			"Return ONLY confidentiality provisions, one per line",
			"Include NDAs, confidentiality obligations, and disclosure restrictions",
			"Keep descriptions clear and concise",
			"Do not include any explanations",
			`If no confidentiality terms found, return "No confidentiality terms specified"`,
		},
		Label:     "Confidentiality Terms",
		Sentinels: []string{noneSentinel, "No confidentiality terms specified"},
		Strategy:  strategyList,
	},
	{
		Field: FieldGoverningLaw,
		Task:  "Extract the governing law and jurisdiction from this contract.",
		Rules: []string{
			`Return ONLY the jurisdiction/governing law (e.g., "New York", "Delaware", "California", "England and Wales")`,
			"Do not include any explanations",
			`If no governing law specified, return "Not specified"`,
		},
		Label:    "Governing Law",
		Strategy: strategyScalar,
		Default:  domain.DefaultGoverningLaw,
	},
	{
		Field: FieldContractType,
		Task:  "Identify the type of this contract.",
		Rules: []string{
			`Return ONLY the contract type (e.g., "Service Agreement", "License Agreement", "Employment Contract", "NDA", "Purchase Agreement")`,
			"Do not include any explanations",
			`If type cannot be determined, return "General Contract"`,
		},
		Label:    "Contract Type",
		Strategy: strategyScalar,
		Default:  domain.DefaultContractType,
	},
	{
		Field: FieldSummary,
		Task:  "Generate a concise summary of this contract.",
		Rules: []string{
			"Provide a 2-3 sentence summary covering the main purpose and key terms",
			"Focus on what the contract is about and the primary obligations",
			"Use clear, professional language",
			"Do not exceed 200 words",
		},
		Label:    "Summary",
		Strategy: strategyScalar,
		Default:  domain.DefaultSummary,
	},
}

// Fields returns every field in extraction order.
func Fields() []Field {
	out := make([]Field, len(fieldSpecs))
	for i, s := range fieldSpecs {
		out[i] = s.Field
	}
	return out
}

// prompt renders the instruction for this field around the contract text.
func (s *fieldSpec) prompt(contractText string) string {
	var b strings.Builder
	b.WriteString("You are a legal document analysis expert. ")
	b.WriteString(s.Task)
	b.WriteString("\n\nRules:\n")
	for _, r := range s.Rules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteByte('\n')
	}
	b.WriteString("\nContract text:\n")
	b.WriteString(contractText)
	b.WriteString("\n\n")
	b.WriteString(s.Label)
	b.WriteString(":")
	return b.String()
}

func (s *fieldSpec) isSentinel(line string) bool {
	for _, sentinel := range s.Sentinels {
		if strings.EqualFold(line, sentinel) {
			return true
		}
	}
	return false
}
