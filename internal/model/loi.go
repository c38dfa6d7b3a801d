// Package model defines the LOI record schema, its defaults, strict
// construction from untyped JSON, and the confidence envelope.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// ValidationError describes a single field that failed schema validation.
type ValidationError struct {
	Field  string // dot-notation path, e.g. "property_details.address"
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "loi validation: " + e.Reason
	}
	return fmt.Sprintf("loi validation: %s: %s", e.Field, e.Reason)
}

// PropertyDetails holds property and space information.
type PropertyDetails struct {
	Address       string  `json:"address"`
	PropertyType  string  `json:"property_type" jsonschema:"default=Office Space"`
	SquareFootage *int    `json:"square_footage,omitempty" jsonschema:"minimum=0"`
	Description   *string `json:"description,omitempty"`
}

// PartyInformation identifies the buyer/tenant and seller/landlord.
type PartyInformation struct {
	BuyerTenantName      string  `json:"buyer_tenant_name"`
	BuyerTenantEntity    *string `json:"buyer_tenant_entity,omitempty"`
	SellerLandlordName   string  `json:"seller_landlord_name"`
	SellerLandlordEntity *string `json:"seller_landlord_entity,omitempty"`
}

// FinancialTerms holds the financial terms of the deal.
type FinancialTerms struct {
	TransactionType   string   `json:"transaction_type" jsonschema:"enum=Lease,enum=Purchase,default=Lease"`
	PurchasePrice     *float64 `json:"purchase_price,omitempty" jsonschema:"minimum=0"`
	BaseRent          *float64 `json:"base_rent,omitempty" jsonschema:"minimum=0"`
	RentPerSqft       *float64 `json:"rent_per_sqft,omitempty" jsonschema:"minimum=0"`
	EscalationRate    float64  `json:"escalation_rate" jsonschema:"default=3"`
	SecurityDeposit   *float64 `json:"security_deposit,omitempty" jsonschema:"minimum=0"`
	OperatingExpenses string   `json:"operating_expenses" jsonschema:"default=NNN"`
}

// Timeline holds the deal's dates and deadlines. Dates are ISO 8601
// calendar dates (YYYY-MM-DD).
type Timeline struct {
	LOIExpirationDate     *string `json:"loi_expiration_date,omitempty" jsonschema:"format=date"`
	DueDiligencePeriod    int     `json:"due_diligence_period" jsonschema:"default=30"`
	LeaseCommencementDate *string `json:"lease_commencement_date,omitempty" jsonschema:"format=date"`
	LeaseTermMonths       *int    `json:"lease_term_months,omitempty" jsonschema:"minimum=0"`
	ClosingDate           *string `json:"closing_date,omitempty" jsonschema:"format=date"`
	OccupancyDate         *string `json:"occupancy_date,omitempty" jsonschema:"format=date"`
	FreeRentPeriod        *int    `json:"free_rent_period,omitempty" jsonschema:"minimum=0"`
}

// Contingencies lists the conditions that must be met before closing.
type Contingencies struct {
	FinancingContingency     bool     `json:"financing_contingency" jsonschema:"default=true"`
	InspectionContingency    bool     `json:"inspection_contingency" jsonschema:"default=true"`
	EnvironmentalContingency bool     `json:"environmental_contingency" jsonschema:"default=true"`
	ZoningApproval           bool     `json:"zoning_approval" jsonschema:"default=false"`
	CustomContingencies      []string `json:"custom_contingencies"`
}

// TransactionCosts allocates transaction expenses between the parties.
type TransactionCosts struct {
	BrokerCommissionRate       float64  `json:"broker_commission_rate" jsonschema:"default=5"`
	BrokerPaidBy               string   `json:"broker_paid_by" jsonschema:"default=Seller/Landlord"`
	LegalFeesAllocation        string   `json:"legal_fees_allocation" jsonschema:"default=Each party pays own"`
	TitleInsurancePaidBy       string   `json:"title_insurance_paid_by" jsonschema:"default=Buyer"`
	TenantImprovementAllowance *float64 `json:"tenant_improvement_allowance,omitempty" jsonschema:"minimum=0"`
}

// LOIFields is the complete LOI record. All six sub-records are always
// present; the ones whose fields are all optional fall back to their
// default instances when absent from the input.
type LOIFields struct {
	PropertyDetails   PropertyDetails  `json:"property_details"`
	PartyInformation  PartyInformation `json:"party_information"`
	FinancialTerms    FinancialTerms   `json:"financial_terms"`
	Timeline          Timeline         `json:"timeline"`
	Contingencies     Contingencies    `json:"contingencies"`
	TransactionCosts  TransactionCosts `json:"transaction_costs"`
	AdditionalTerms   *string          `json:"additional_terms,omitempty"`
	BrokerInformation string           `json:"broker_information" jsonschema:"default=[Broker Name and Contact]"`
}

// Default instances. Decode seeds each sub-record with these so absent
// keys keep their documented defaults and present keys override them.

func DefaultPropertyDetails() PropertyDetails {
	return PropertyDetails{PropertyType: "Office Space"}
}

func DefaultPartyInformation() PartyInformation {
	return PartyInformation{}
}

func DefaultFinancialTerms() FinancialTerms {
	return FinancialTerms{
		TransactionType:   "Lease",
		EscalationRate:    3.0,
		OperatingExpenses: "NNN",
	}
}

func DefaultTimeline() Timeline {
	return Timeline{DueDiligencePeriod: 30}
}

func DefaultContingencies() Contingencies {
	return Contingencies{
		FinancingContingency:     true,
		InspectionContingency:    true,
		EnvironmentalContingency: true,
		ZoningApproval:           false,
		CustomContingencies:      []string{},
	}
}

func DefaultTransactionCosts() TransactionCosts {
	return TransactionCosts{
		BrokerCommissionRate: 5.0,
		BrokerPaidBy:         "Seller/Landlord",
		LegalFeesAllocation:  "Each party pays own",
		TitleInsurancePaidBy: "Buyer",
	}
}

func DefaultLOIFields() LOIFields {
	return LOIFields{
		PropertyDetails:   DefaultPropertyDetails(),
		PartyInformation:  DefaultPartyInformation(),
		FinancialTerms:    DefaultFinancialTerms(),
		Timeline:          DefaultTimeline(),
		Contingencies:     DefaultContingencies(),
		TransactionCosts:  DefaultTransactionCosts(),
		BrokerInformation: "[Broker Name and Contact]",
	}
}

// decodeStrict decodes data over the seeded value in v, rejecting unknown
// fields. JSON null is a no-op so null sub-records keep their defaults.
func decodeStrict(data []byte, v any) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (p *PropertyDetails) UnmarshalJSON(data []byte) error {
	type plain PropertyDetails
	tmp := plain(DefaultPropertyDetails())
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	if tmp.PropertyType == "" {
		tmp.PropertyType = "Office Space"
	}
	*p = PropertyDetails(tmp)
	return nil
}

func (p *PartyInformation) UnmarshalJSON(data []byte) error {
	type plain PartyInformation
	tmp := plain(DefaultPartyInformation())
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	*p = PartyInformation(tmp)
	return nil
}

func (f *FinancialTerms) UnmarshalJSON(data []byte) error {
	type plain FinancialTerms
	tmp := plain(DefaultFinancialTerms())
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	if tmp.TransactionType == "" {
		tmp.TransactionType = "Lease"
	}
	if tmp.OperatingExpenses == "" {
		tmp.OperatingExpenses = "NNN"
	}
	*f = FinancialTerms(tmp)
	return nil
}

func (t *Timeline) UnmarshalJSON(data []byte) error {
	type plain Timeline
	tmp := plain(DefaultTimeline())
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	*t = Timeline(tmp)
	return nil
}

func (c *Contingencies) UnmarshalJSON(data []byte) error {
	type plain Contingencies
	tmp := plain(DefaultContingencies())
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	if tmp.CustomContingencies == nil {
		tmp.CustomContingencies = []string{}
	}
	*c = Contingencies(tmp)
	return nil
}

func (t *TransactionCosts) UnmarshalJSON(data []byte) error {
	type plain TransactionCosts
	tmp := plain(DefaultTransactionCosts())
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	if tmp.BrokerPaidBy == "" {
		tmp.BrokerPaidBy = "Seller/Landlord"
	}
	if tmp.LegalFeesAllocation == "" {
		tmp.LegalFeesAllocation = "Each party pays own"
	}
	if tmp.TitleInsurancePaidBy == "" {
		tmp.TitleInsurancePaidBy = "Buyer"
	}
	*t = TransactionCosts(tmp)
	return nil
}

func (l *LOIFields) UnmarshalJSON(data []byte) error {
	type plain LOIFields
	tmp := plain(DefaultLOIFields())
	if err := decodeStrict(data, &tmp); err != nil {
		return err
	}
	if tmp.BrokerInformation == "" {
		tmp.BrokerInformation = "[Broker Name and Contact]"
	}
	*l = LOIFields(tmp)
	return nil
}

// ParseLOIFields constructs a validated LOIFields from raw JSON. Unknown
// keys, type mismatches, and constraint violations all fail with a
// *ValidationError; only non-JSON input produces a plain parse error.
func ParseLOIFields(data []byte) (*LOIFields, error) {
	var fields LOIFields
	if err := decodeStrict(data, &fields); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, eris.Wrap(err, "model: parse loi json")
		}
		var typ *json.UnmarshalTypeError
		if errors.As(err, &typ) {
			return nil, &ValidationError{
				Field:  typ.Field,
				Reason: fmt.Sprintf("expected %s, got JSON %s", typ.Type, typ.Value),
			}
		}
		return nil, &ValidationError{Reason: err.Error()}
	}
	if verr := fields.Validate(); verr != nil {
		return nil, verr
	}
	return &fields, nil
}

// Validate checks required fields and value constraints. Returns the first
// violation as a *ValidationError, or nil.
func (l *LOIFields) Validate() error {
	if strings.TrimSpace(l.PropertyDetails.Address) == "" {
		return &ValidationError{Field: "property_details.address", Reason: "required"}
	}
	if strings.TrimSpace(l.PartyInformation.BuyerTenantName) == "" {
		return &ValidationError{Field: "party_information.buyer_tenant_name", Reason: "required"}
	}
	if strings.TrimSpace(l.PartyInformation.SellerLandlordName) == "" {
		return &ValidationError{Field: "party_information.seller_landlord_name", Reason: "required"}
	}

	if err := nonNegativeInt("property_details.square_footage", l.PropertyDetails.SquareFootage); err != nil {
		return err
	}

	ft := l.FinancialTerms
	if ft.TransactionType != "Lease" && ft.TransactionType != "Purchase" {
		return &ValidationError{
			Field:  "financial_terms.transaction_type",
			Reason: fmt.Sprintf("must be %q or %q, got %q", "Lease", "Purchase", ft.TransactionType),
		}
	}
	for _, check := range []struct {
		path string
		val  *float64
	}{
		{"financial_terms.purchase_price", ft.PurchasePrice},
		{"financial_terms.base_rent", ft.BaseRent},
		{"financial_terms.rent_per_sqft", ft.RentPerSqft},
		{"financial_terms.security_deposit", ft.SecurityDeposit},
		{"transaction_costs.tenant_improvement_allowance", l.TransactionCosts.TenantImprovementAllowance},
	} {
		if err := nonNegativeFloat(check.path, check.val); err != nil {
			return err
		}
	}
	if ft.EscalationRate < 0 {
		return &ValidationError{Field: "financial_terms.escalation_rate", Reason: "must be non-negative"}
	}
	if l.TransactionCosts.BrokerCommissionRate < 0 {
		return &ValidationError{Field: "transaction_costs.broker_commission_rate", Reason: "must be non-negative"}
	}

	tl := l.Timeline
	if tl.DueDiligencePeriod < 0 {
		return &ValidationError{Field: "timeline.due_diligence_period", Reason: "must be non-negative"}
	}
	if err := nonNegativeInt("timeline.lease_term_months", tl.LeaseTermMonths); err != nil {
		return err
	}
	if err := nonNegativeInt("timeline.free_rent_period", tl.FreeRentPeriod); err != nil {
		return err
	}
	for _, check := range []struct {
		path string
		val  *string
	}{
		{"timeline.loi_expiration_date", tl.LOIExpirationDate},
		{"timeline.lease_commencement_date", tl.LeaseCommencementDate},
		{"timeline.closing_date", tl.ClosingDate},
		{"timeline.occupancy_date", tl.OccupancyDate},
	} {
		if err := isoDate(check.path, check.val); err != nil {
			return err
		}
	}

	return nil
}

func nonNegativeInt(path string, v *int) error {
	if v != nil && *v < 0 {
		return &ValidationError{Field: path, Reason: "must be non-negative"}
	}
	return nil
}

func nonNegativeFloat(path string, v *float64) error {
	if v != nil && *v < 0 {
		return &ValidationError{Field: path, Reason: "must be non-negative"}
	}
	return nil
}

func isoDate(path string, v *string) error {
	if v == nil {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *v); err != nil {
		return &ValidationError{Field: path, Reason: fmt.Sprintf("not an ISO 8601 date: %q", *v)}
	}
	return nil
}
