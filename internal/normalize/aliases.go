package normalize

// Canonical field names used by the alias table.
const (
	fieldTitle       = "title"
	fieldCompany     = "company"
	fieldLocation    = "location"
	fieldURL         = "url"
	fieldDescription = "description"
	fieldSourceJobID = "source_job_id"
	fieldSalaryMin   = "salary_min"
	fieldSalaryMax   = "salary_max"
	fieldJobType     = "job_type"
	fieldRemoteType  = "remote_type"
)

// aliasTable maps each canonical field to the raw key names that may carry it,
// in priority order. Scraper vendors and export formats disagree on naming
// (greenhouse says absolute_url/content, lever says hostedUrl/descriptionPlain,
// CSV exports say job_title), so a new source is onboarded by extending a list
// here rather than by adding per-source branches downstream.
var aliasTable = map[string][]string{
	fieldTitle:       {"title", "job_title", "jobTitle", "position", "text", "name"},
	fieldCompany:     {"company", "company_name", "companyName", "employer", "organization", "hiring_organization"},
	fieldLocation:    {"location", "job_location", "city", "locality", "area"},
	fieldURL:         {"url", "job_url", "link", "absolute_url", "hostedUrl", "apply_url", "applyUrl"},
	fieldDescription: {"description", "job_description", "jd", "content", "descriptionPlain", "descriptionHtml", "snippet", "summary"},
	fieldSourceJobID: {"source_job_id", "external_id", "externalId", "job_id", "jobId", "id", "req_id"},
	fieldSalaryMin:   {"salary_min", "salaryMin", "min_salary", "salary_from", "compensation_min"},
	fieldSalaryMax:   {"salary_max", "salaryMax", "max_salary", "salary_to", "compensation_max"},
	fieldJobType:     {"job_type", "jobType", "employment_type", "employmentType", "commitment", "contract_type", "type"},
	fieldRemoteType:  {"remote_type", "remoteType", "remote", "workplace_type", "workplaceType", "work_mode", "workMode"},
}
