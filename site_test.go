package staffscout_test

import (
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/stretchr/testify/assert"
)

func TestSite_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&staffscout.Site{URL: "https://www.kit.edu"}).Validate())

	for _, raw := range []string{"", "kit.edu", "ftp://kit.edu", "https://"} {
		err := (&staffscout.Site{URL: raw}).Validate()
		assert.Equal(t, staffscout.EINVALID, staffscout.ErrorCode(err), "url %q", raw)
	}
}

func TestSiteFromURL_DerivesNameFromHost(t *testing.T) {
	t.Parallel()

	site := staffscout.SiteFromURL("https://www.kit.edu/staff")

	assert.Equal(t, "Kit", site.Name)
	assert.Equal(t, "Custom", site.Country)
	assert.Equal(t, "https://www.kit.edu/staff", site.URL)
}

func TestPageClass_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "staff", staffscout.StaffPage.String())
	assert.Equal(t, "hub", staffscout.DepartmentHub.String())
	assert.Equal(t, "irrelevant", staffscout.Irrelevant.String())
}
