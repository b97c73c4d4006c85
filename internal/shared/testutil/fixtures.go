package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AlarmHeader is the header line of an alarm export
const AlarmHeader = "Date,Time,Alarm Message,Alarm Status"

// BatchHeader is the header line of a batch export, quality flag included
const BatchHeader = "Date,Time,USER,TEMP_AIR_IN,TEMP_AIR_IN_QF,TEMP_PRODUCT_1,TEMP_PRODUCT_2,TEMP_PRODUCT_3"

// OperlogHeader is the header line of an operator log export
const OperlogHeader = "Date,Time,User,Screen,Trigger,Previous Value,Changed Value"

// AlarmExport returns a comma separated alarm export with rows entries,
// five minutes apart from 10:00 on 6/25/2025
func AlarmExport(rows int) string {
	var b strings.Builder
	b.WriteString(AlarmHeader + "\n")
	statuses := []string{"ACTIVE", "ACKNOWLEDGED", "CLEARED"}
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "6/25/2025,%s,Tank %d level high,%s\n", clock(i), i+1, statuses[i%len(statuses)])
	}
	return b.String()
}

// BatchExport returns a batch export with rows samples. TEMP_AIR_IN starts
// at 60.00 and climbs by 0.37; the products start at 40, 41 and 42.
func BatchExport(rows int) string {
	var b strings.Builder
	b.WriteString(BatchHeader + "\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "6/25/2025,%s,operator,%.2f,1,%.2f,%.2f,%.2f\n",
			clock(i), 60+float64(i)*0.37, 40+float64(i), 41+float64(i), 42+float64(i))
	}
	return b.String()
}

// OperlogExport returns an operator log export with rows entries
func OperlogExport(rows int) string {
	var b strings.Builder
	b.WriteString(OperlogHeader + "\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "6/25/2025,%s,admin,Setpoint tank %d,Manual,%d,%d\n", clock(i), i+1, 20+i, 25+i)
	}
	return b.String()
}

func clock(i int) string {
	m := i * 5
	return fmt.Sprintf("%02d:%02d:00", 10+m/60, m%60)
}

// WriteFixture writes content to dir/name, creating parent directories,
// and returns the full path
func WriteFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
