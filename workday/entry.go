package workday

// Entry is one course section as exported by the Workday course listings
// report. Every value is a string, including ratios ("12/30"), lists
// ("a; b") and meeting patterns ("AK 116 | M-W-R | 10:00 AM - 10:50 AM").
type Entry struct {
	CourseSectionStartDate string `json:"Course_Section_Start_Date"`
	ClusterRefID           string `json:"CF_LRV_Cluster_Ref_ID"`
	SectionCluster         string `json:"Student_Course_Section_Cluster"`
	MeetingPatterns        string `json:"Meeting_Patterns"`
	CourseTitle            string `json:"Course_Title"`
	Locations              string `json:"Locations"`
	InstructionalFormat    string `json:"Instructional_Format"`
	WaitlistCapacity       string `json:"Waitlist_Waitlist_Capacity"`
	CourseDescription      string `json:"Course_Description"`
	PublicNotes            string `json:"Public_Notes"`
	Subject                string `json:"Subject"`
	DeliveryMode           string `json:"Delivery_Mode"`
	AcademicLevel          string `json:"Academic_Level"`
	SectionStatus          string `json:"Section_Status"`
	Credits                string `json:"Credits"`
	SectionDetails         string `json:"Section_Details"`
	Instructors            string `json:"Instructors"`
	OfferingPeriod         string `json:"Offering_Period"`
	StartingPeriodType     string `json:"Starting_Academic_Period_Type"`
	CourseTags             string `json:"Course_Tags"`
	AcademicUnits          string `json:"Academic_Units"`
	CourseSection          string `json:"Course_Section"`
	EnrolledCapacity       string `json:"Enrolled_Capacity"`
	CourseSectionEndDate   string `json:"Course_Section_End_Date"`
	MeetingDayPatterns     string `json:"Meeting_Day_Patterns"`
	CourseSectionOwner     string `json:"Course_Section_Owner"`
}

// Report is the whole export document.
type Report struct {
	Entries []Entry `json:"Report_Entry"`
}
