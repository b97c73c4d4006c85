package reports

import (
	"fmt"

	"hmireport/internal/dataprocessing"
	apperrors "hmireport/internal/errors"
	"hmireport/internal/files"
	"hmireport/pkg/contracts/domain"
)

// inputExtensions are the export formats the locator considers
var inputExtensions = []string{".csv", ".xlsx"}

// Kind describes one export family: where its input lives, which columns
// it prints and how its documents are assembled.
type Kind struct {
	ID      domain.ReportKind
	Matcher files.Matcher
	Columns []domain.ColumnSpec
	Exclude dataprocessing.ExcludeFunc

	// OutputNextToInput writes documents beside the source file when no
	// output directory is configured.
	OutputNextToInput bool
	// Chart adds the temperature trend and the period subtitle.
	Chart bool
}

// ChartTitle is the document title of a standalone chart file
func (k Kind) ChartTitle(base string) string {
	return base + " - Temperature Trend"
}

// Lookup returns the registered kind
func Lookup(id domain.ReportKind) (Kind, error) {
	parsed, ok := domain.ParseReportKind(string(id))
	if !ok {
		return Kind{}, apperrors.NewAppValidationError(fmt.Sprintf("unknown report kind %q", id))
	}
	switch parsed {
	case domain.ReportKindAlarm:
		return alarmKind(), nil
	case domain.ReportKindOperlog:
		return operlogKind(), nil
	case domain.ReportKindBatch:
		return batchKind(), nil
	default:
		return Kind{}, apperrors.NewAppValidationError(fmt.Sprintf("unknown report kind %q", id))
	}
}

func required(name, label string, transform domain.TransformFunc, aliases ...string) domain.ColumnSpec {
	return domain.ColumnSpec{
		Name:      name,
		Label:     label,
		Aliases:   aliases,
		Required:  true,
		Transform: transform,
	}
}

func alarmKind() Kind {
	return Kind{
		ID: domain.ReportKindAlarm,
		Matcher: files.SubstringMatcher{
			Token:      "ALARM",
			Extensions: inputExtensions,
			Exclude:    []string{"OPERLOG", "BATCH"},
		},
		Columns: []domain.ColumnSpec{
			required(dataprocessing.ColumnDate, "", dataprocessing.DateTransform),
			required(dataprocessing.ColumnTime, "", nil),
			required("Alarm Message", "", nil, "Message"),
			required("Alarm Status", "", dataprocessing.TitleCaseTransform, "Status"),
		},
	}
}

func operlogKind() Kind {
	return Kind{
		ID: domain.ReportKindOperlog,
		Matcher: files.DatedFolderMatcher{Inner: files.SubstringMatcher{
			Token:      "OPERLOG",
			Extensions: inputExtensions,
		}},
		Columns: []domain.ColumnSpec{
			required(dataprocessing.ColumnDate, "", dataprocessing.DateTransform),
			required(dataprocessing.ColumnTime, "", nil),
			required("User", "", nil),
			required("Object_Action", "Object Action", nil, "Object Action", "Screen"),
			required("Trigger", "", nil),
			required("PreviousValue", "Previous Value", nil, "Previous Value"),
			required("ChangedValue", "Changed Value", nil, "Changed Value"),
		},
		OutputNextToInput: true,
	}
}

func batchKind() Kind {
	return Kind{
		ID: domain.ReportKindBatch,
		Matcher: files.SubstringMatcher{
			Token:      "BATCH",
			Extensions: inputExtensions,
			Exclude:    []string{"OPERLOG", "ALARM"},
		},
		Columns: []domain.ColumnSpec{
			required(dataprocessing.ColumnDate, "", dataprocessing.DateTransform),
			required(dataprocessing.ColumnTime, "", nil),
			required("USER", "User", nil),
			required("TEMP_AIR_IN", "Temp. Air Inlet", dataprocessing.Round1Transform),
			required("TEMP_PRODUCT_1", "Temp. Product 1", dataprocessing.Round1Transform),
			required("TEMP_PRODUCT_2", "Temp. Product 2", dataprocessing.Round1Transform),
			required("TEMP_PRODUCT_3", "Temp. Product 3", dataprocessing.Round1Transform),
		},
		Exclude: dataprocessing.QualityFlagColumn,
		Chart:   true,
	}
}

// excluding returns a copy of k whose matcher also skips names containing
// token. Used to keep exported tables from being picked up as input.
func (k Kind) excluding(token string) Kind {
	if token == "" {
		return k
	}
	extend := func(m files.SubstringMatcher) files.SubstringMatcher {
		m.Exclude = append(append([]string(nil), m.Exclude...), token)
		return m
	}
	switch m := k.Matcher.(type) {
	case files.SubstringMatcher:
		k.Matcher = extend(m)
	case files.DatedFolderMatcher:
		k.Matcher = files.DatedFolderMatcher{Inner: extend(m.Inner)}
	}
	return k
}
