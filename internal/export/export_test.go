package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/timesheet/internal/model"
)

func sampleWeek() model.Week {
	w := model.NewWeek(time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC))
	w.Meta = model.Meta{EmployeeName: "Dana", ClassName: "Labourer", WeekEndingDate: "2026-03-01"}
	w.Days[0].DepotStart, w.Days[0].DepotFinish = "06:30", "15:00"
	w.Days[0].LunchTaken = true
	w.Days[0].Jobs = []model.Job{
		{ProjectName: "Fencing, North", OnSite: "07:00", OffSite: "11:00"},
		{ProjectName: "Paving", OnSite: "11:30", OffSite: "15:00"},
	}
	w.Days[1].Remarks = `said "hi"`
	w.SprayAllowance[2] = model.AllowanceRow{Start: "08:00", Finish: "09:30", UnitNo: "U7", ApprovedBy: "Sam"}
	w.WetHours[4] = model.AllowanceRow{Start: "22:00", Finish: "01:00"}
	return w
}

func TestCSVLayout(t *testing.T) {
	got := CSV(sampleWeek(), WeeklyTotal(sampleWeek()))

	want := strings.Join([]string{
		"Name,Dana",
		"Class,Labourer",
		"Week Ending,2026-03-01",
		"",
		"Day,Depot Start,Depot Finish,Lunch,Lunch Penalty,Lunch Time,Job1 Name,Job1 On,Job1 Off,Job2 Name,Job2 On,Job2 Off,Remarks,Approved By,Total Hours",
		`Monday,06:30,15:00,Y,N,,"Fencing, North",07:00,11:00,Paving,11:30,15:00,,,8.00`,
		`Tuesday,,,N,N,,,,,,,,"said ""hi""",,0.00`,
		"Wednesday,,,N,N,,,,,,,,,,0.00",
		"Thursday,,,N,N,,,,,,,,,,0.00",
		"Friday,,,N,N,,,,,,,,,,0.00",
		"Saturday,,,N,N,,,,,,,,,,0.00",
		"Sunday,,,N,N,,,,,,,,,,0.00",
		"",
		"Spray Allowance",
		"Day,Start,Finish,Hours,Unit No,Appr By",
		"Monday,,,0.00,,",
		"Tuesday,,,0.00,,",
		"Wednesday,08:00,09:30,1.50,U7,Sam",
		"Thursday,,,0.00,,",
		"Friday,,,0.00,,",
		"Saturday,,,0.00,,",
		"Sunday,,,0.00,,",
		"",
		"Wet Hours",
		"Day,Start,Finish,Hours,Unit No,Appr By",
		"Monday,,,0.00,,",
		"Tuesday,,,0.00,,",
		"Wednesday,,,0.00,,",
		"Thursday,,,0.00,,",
		"Friday,22:00,01:00,3.00,,",
		"Saturday,,,0.00,,",
		"Sunday,,,0.00,,",
		"",
		"Weekly Total,8.00",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestCSVUsesGivenTotalVerbatim(t *testing.T) {
	got := CSV(sampleWeek(), "99.99")
	assert.True(t, strings.HasSuffix(got, "Weekly Total,99.99"))
}

func TestRowsPadShortDays(t *testing.T) {
	w := sampleWeek()
	w.Days[3].Jobs = []model.Job{{}, {}, {ProjectName: "Drains", OnSite: "08:00", OffSite: "09:00"}}

	rows := Rows(w, "")
	header := rows[4]
	monday := rows[5]

	assert.Equal(t, 3, MaxJobs(w))
	assert.Len(t, header, 6+3*3+3)
	assert.Equal(t, "Job3 Off", header[14])
	assert.Len(t, monday, len(header))
	assert.Equal(t, []string{"", "", ""}, monday[12:15])
}

func TestRowsShortWeek(t *testing.T) {
	rows := Rows(model.Week{}, "0.00")
	// header + 7 days + 2x(blank, title, header, 7 rows) + blank + total
	assert.Len(t, rows, 4+1+7+1+9+1+9+1+1)
	assert.Equal(t, []string{"Day", "Depot Start", "Depot Finish", "Lunch", "Lunch Penalty", "Lunch Time", "Remarks", "Approved By", "Total Hours"}, rows[4])
}

func TestCSVEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a,b", `"a,b"`},
		{`say "x"`, `"say ""x"""`},
		{"two\nlines", "\"two\nlines\""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, csvEscape(tt.in), tt.in)
	}
}

func TestWriteCSVTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleWeek()))
	assert.True(t, strings.HasSuffix(buf.String(), "Weekly Total,8.00\n"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "timesheet_2026-03-01.csv", FileName(sampleWeek(), "csv"))
	assert.Equal(t, "timesheet_week.pdf", FileName(model.Week{}, "pdf"))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleWeek()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	name, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", name)

	job, err := f.GetCellValue(sheet, "G6")
	require.NoError(t, err)
	assert.Equal(t, "Fencing, North", job)
}

func TestWritePDF(t *testing.T) {
	w := sampleWeek()
	w.SignatureImage = "data:image/png;base64,bm90IGFuIGltYWdl"

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, w))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestDecodeDataURL(t *testing.T) {
	data, typ, ok := decodeDataURL(DataURL("image/png", []byte{1, 2, 3}))
	require.True(t, ok)
	assert.Equal(t, "PNG", typ)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, typ, ok = decodeDataURL("data:image/jpeg;base64,AAE=")
	assert.True(t, ok)
	assert.Equal(t, "JPG", typ)

	for _, bad := range []string{"", "data:image/gif;base64,AAE=", "data:image/png,raw", "data:image/png;base64,%%%"} {
		_, _, ok := decodeDataURL(bad)
		assert.False(t, ok, bad)
	}
}
