package validation

import (
	"fmt"

	"teahouse/internal/models"
)

// craftMaxStock caps craft product stock on update.
const craftMaxStock = 10

func ValidateTeaProduct(in models.TeaProductInput) Result {
	return result(checkCreate(in, "name", "price", "stock"))
}

func ValidateTeaProductUpdate(in models.TeaProductInput) Result {
	return result(checkUpdate(in))
}

func ValidateCraftProduct(in models.CraftProductInput) Result {
	return result(checkCreate(in, "name", "brandArtist", "creationDate", "description", "price", "stock"))
}

func ValidateCraftProductUpdate(in models.CraftProductInput) Result {
	errs := checkUpdate(in)
	if in.Stock != nil && *in.Stock > craftMaxStock {
		errs = append(errs, fmt.Sprintf("field 'stock' must not exceed %d units for craft products", craftMaxStock))
	}
	return result(errs)
}

func ValidateOffer(in models.OfferInput) Result {
	errs := checkCreate(in, "title", "description", "applicableTo", "minimumPurchase", "state",
		"promotionalCode", "startDate", "endDate")
	errs = append(errs, applicableToErrors(in.ApplicableTo)...)
	errs = append(errs, limitErrors(in)...)
	return result(errs)
}

func ValidateOfferUpdate(in models.OfferInput) Result {
	errs := checkUpdate(in)
	errs = append(errs, applicableToErrors(in.ApplicableTo)...)
	errs = append(errs, limitErrors(in)...)
	return result(errs)
}

func applicableToErrors(items *[]models.ProductDescriptorInput) []string {
	if items == nil {
		return nil
	}
	if len(*items) == 0 {
		return []string{"field 'applicableTo' must contain at least one product"}
	}
	var errs []string
	for i, item := range *items {
		errs = append(errs, structErrors(item, fmt.Sprintf("applicableTo[%d].", i))...)
	}
	return errs
}

// limitErrors enforces that a limited offer carries a positive limit.
func limitErrors(in models.OfferInput) []string {
	if in.IsLimited == nil || !*in.IsLimited {
		return nil
	}
	if in.Limit == nil || *in.Limit <= 0 {
		return []string{"field 'limit' is required and must be a positive integer when 'isLimited' is true"}
	}
	return nil
}

func ValidateEvent(in models.EventInput) Result {
	errs := checkCreate(in, "title", "date", "startTime", "endTime", "description", "location", "entryPrice")
	errs = append(errs, eventRuleErrors(in)...)
	return result(errs)
}

func ValidateEventUpdate(in models.EventInput) Result {
	errs := checkUpdate(in)
	errs = append(errs, eventRuleErrors(in)...)
	return result(errs)
}

// eventRuleErrors checks the rules spanning two fields, when both are supplied.
func eventRuleErrors(in models.EventInput) []string {
	var errs []string
	if in.StartTime != nil && in.EndTime != nil &&
		timePattern.MatchString(*in.StartTime) && timePattern.MatchString(*in.EndTime) &&
		*in.EndTime <= *in.StartTime {
		errs = append(errs, "field 'endTime' must be later than 'startTime'")
	}
	if in.IsFree != nil && *in.IsFree && in.EntryPrice != nil && *in.EntryPrice != 0 {
		errs = append(errs, "field 'entryPrice' must be 0 when 'isFree' is true")
	}
	return errs
}

func ValidateReservation(in models.ReservationInput) Result {
	errs := checkCreate(in, "userId", "products", "totalAmount", "pickupDate", "pickupTimeSlot",
		"contactEmail", "paymentMethod", "subtotal", "state")
	errs = append(errs, productsErrors(in.Products)...)
	return result(errs)
}

func ValidateReservationUpdate(in models.ReservationInput) Result {
	errs := checkUpdate(in)
	errs = append(errs, productsErrors(in.Products)...)
	return result(errs)
}

func productsErrors(items *[]models.ReservationItemInput) []string {
	if items == nil {
		return nil
	}
	if len(*items) == 0 {
		return []string{"field 'products' must contain at least one product"}
	}
	var errs []string
	for i, item := range *items {
		errs = append(errs, structErrors(item, fmt.Sprintf("products[%d].", i))...)
	}
	return errs
}

// ValidateUser checks a registration. Role is ignored: new users are always
// plain users.
func ValidateUser(in models.UserInput) Result {
	in.Role = nil
	return result(checkCreate(in, "fullName", "dateOfBirth", "email", "password"))
}

func ValidateUserUpdate(in models.UserInput) Result {
	return result(checkUpdate(in))
}

func ValidateLogin(in models.LoginRequest) Result {
	return result(structErrors(in, ""))
}
