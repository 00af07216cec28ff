package careers

import catalogcareers "github.com/goliatone/go-catalog/careers"

type (
	Locale            = catalogcareers.Locale
	Career            = catalogcareers.Career
	CareerTranslation = catalogcareers.CareerTranslation
	TrendAnnotation   = catalogcareers.TrendAnnotation
	TrendInsight      = catalogcareers.TrendInsight
	NotFoundError     = catalogcareers.NotFoundError
	Filter            = catalogcareers.Filter
)
