package extract

import (
	"time"

	"github.com/dealdesk/loi-parser/internal/model"
)

// CreateMock returns a fixed illustrative LOI for testing without a
// transcript or collaborator call. The only computed values are the
// timeline dates, anchored to the current date.
func CreateMock() *model.LOIFields {
	return mockLOI(time.Now())
}

func mockLOI(today time.Time) *model.LOIFields {
	sqft := 8500
	description := "Premium office space with Hudson River views, modern finishes, and 24/7 access"
	buyerEntity := "Delaware Limited Liability Company"
	sellerEntity := "New York REIT"
	baseRent := 28000.0
	rentPerSqft := 45.0
	securityDeposit := 56000.0
	expiration := today.AddDate(0, 0, 14).Format("2006-01-02")
	commencement := today.AddDate(0, 0, 90).Format("2006-01-02")
	leaseTerm := 84
	freeRent := 3
	tiAllowance := 35.0
	additionalTerms := "Tenant shall have right of first refusal on adjacent 11th floor space. Signage rights on building directory."

	return &model.LOIFields{
		PropertyDetails: model.PropertyDetails{
			Address:       "500 Park Avenue, 10th Floor, New York, NY 10022",
			PropertyType:  "Class A Office Space",
			SquareFootage: &sqft,
			Description:   &description,
		},
		PartyInformation: model.PartyInformation{
			BuyerTenantName:      "TechStart Innovations LLC",
			BuyerTenantEntity:    &buyerEntity,
			SellerLandlordName:   "Park Avenue Properties Group",
			SellerLandlordEntity: &sellerEntity,
		},
		FinancialTerms: model.FinancialTerms{
			TransactionType:   "Lease",
			BaseRent:          &baseRent,
			RentPerSqft:       &rentPerSqft,
			EscalationRate:    3.5,
			SecurityDeposit:   &securityDeposit,
			OperatingExpenses: "Modified Gross",
		},
		Timeline: model.Timeline{
			LOIExpirationDate:     &expiration,
			DueDiligencePeriod:    45,
			LeaseCommencementDate: &commencement,
			LeaseTermMonths:       &leaseTerm,
			FreeRentPeriod:        &freeRent,
		},
		Contingencies: model.Contingencies{
			FinancingContingency:     false,
			InspectionContingency:    true,
			EnvironmentalContingency: true,
			ZoningApproval:           false,
			CustomContingencies: []string{
				"Subject to landlord completing buildout of common areas",
				"Tenant approval of final space plan",
			},
		},
		TransactionCosts: model.TransactionCosts{
			BrokerCommissionRate:       4.5,
			BrokerPaidBy:               "Landlord",
			LegalFeesAllocation:        "Each party responsible for own legal fees",
			TitleInsurancePaidBy:       "Buyer",
			TenantImprovementAllowance: &tiAllowance,
		},
		AdditionalTerms:   &additionalTerms,
		BrokerInformation: "Sarah Chen, Manhattan Commercial Realty | sarah.chen@mcr.com | (212) 555-0123",
	}
}
