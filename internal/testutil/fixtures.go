package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleHeader mirrors the HR export: required columns interleaved with the
// identifier columns loaders drop.
const SampleHeader = "Employee_Name,EmpID,MarriedID,GenderID,Salary,State,DOB,Sex,CitizenDesc,RaceDesc," +
	"DateofHire,DateofTermination,EmploymentStatus,RecruitmentSource,EmpSatisfaction," +
	"LastPerformanceReview_Date,Absences,Termd"

// SampleCSV is a six-employee dataset.
//
//	year 2008: 1, 2011: 3, 2014: 1, 2015: 1
//	Female: 4, Male: 2
//	total salary 405282
const SampleCSV = SampleHeader + "\n" +
	`"Adinolfi, Wilson  K",10026,0,1,62506,MA,07/10/83,Male,US Citizen,White,7/5/2011,,Active,LinkedIn,5,1/17/2019,1,0` + "\n" +
	`"Ait Sidi, Karthikeyan",10084,1,1,104437,MA,05/05/75,Male,US Citizen,White,3/30/2015,6/16/2016,Voluntarily Terminated,Indeed,3,2/24/2016,17,1` + "\n" +
	`"Akinkuolie, Sarah",10196,1,0,64955,MA,09/19/88,Female,US Citizen,White,7/5/2011,9/24/2012,Voluntarily Terminated,LinkedIn,3,5/15/2012,3,1` + "\n" +
	`"Alagbe,Trina",10088,1,0,64991,MA,09/27/88,Female,US Citizen,White,1/7/2008,,Active,Indeed,5,1/3/2019,15,0` + "\n" +
	`"Anderson, Carol",10069,0,0,50825,MA,09/08/89,Female,US Citizen,Black or African American,7/11/2011,9/6/2016,Voluntarily Terminated,Google Search,4,4/2/2015,2,1` + "\n" +
	`"Andreola, Colby",10002,0,0,57568,TX,05/22/77,Female,Eligible NonCitizen,Asian,11/10/2014,,Active,LinkedIn,3,1/7/2019,15,0` + "\n"

// WriteFile writes content to name inside a fresh temp dir and returns the
// full path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSampleCSV writes SampleCSV to a temp file and returns its path.
func WriteSampleCSV(t testing.TB) string {
	t.Helper()
	return WriteFile(t, "hr.csv", SampleCSV)
}
