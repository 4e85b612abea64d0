package extract

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseDoc is a test helper that parses XML and fails the test on error.
func parseDoc(t *testing.T, xml string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short numeric is zero padded", in: "54", want: "000054"},
		{name: "already six wide is unchanged", in: "000646", want: "000646"},
		{name: "longer than width is unchanged", in: "1234567", want: "1234567"},
		{name: "surrounding whitespace is trimmed", in: "  646 \n", want: "000646"},
		{name: "non numeric is padded as a string", in: "A54", want: "000A54"},
		{name: "empty pads to all zeros", in: "", want: "000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)

			// Normalization is idempotent.
			assert.Equal(t, got, Normalize(got))
			assert.GreaterOrEqual(t, len(got), DefaultPadWidth)
		})
	}
}

func TestExtractRootChildElement(t *testing.T) {
	doc := parseDoc(t, `<Contract><OrderNumber>646</OrderNumber></Contract>`)

	res, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "000646", res.OrderID)
	assert.Equal(t, "element OrderNumber", res.Source)
}

func TestExtractPrecedenceOrder(t *testing.T) {
	// CommandNumber appears first in the document, but OrderNumber outranks
	// it in the candidate table.
	doc := parseDoc(t, `<Contract>
		<CommandNumber>111</CommandNumber>
		<OrderNumber>646</OrderNumber>
	</Contract>`)

	res, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "000646", res.OrderID)
	assert.Equal(t, "element OrderNumber", res.Source)
}

func TestExtractSkipsEmptyElements(t *testing.T) {
	// An empty OrderNumber must not shadow a populated lower-precedence
	// candidate.
	doc := parseDoc(t, `<Contract>
		<OrderNumber>  </OrderNumber>
		<Reference>54</Reference>
	</Contract>`)

	res, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "000054", res.OrderID)
	assert.Equal(t, "element Reference", res.Source)
}

func TestExtractNestedElement(t *testing.T) {
	// Candidates nested below the root are found by the deep pass.
	doc := parseDoc(t, `<Contract>
		<Header>
			<NumeroCommande>72</NumeroCommande>
		</Header>
	</Contract>`)

	res, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "000072", res.OrderID)
	assert.Equal(t, "element NumeroCommande", res.Source)
}

func TestExtractAttributeFallback(t *testing.T) {
	doc := parseDoc(t, `<Contract>
		<Position ref="C-9"/>
	</Contract>`)

	res, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "000C-9", res.OrderID)
	assert.Equal(t, "attribute ref", res.Source)
}

func TestExtractElementsOutrankAttributes(t *testing.T) {
	doc := parseDoc(t, `<Contract orderNumber="999">
		<Reference>54</Reference>
	</Contract>`)

	res, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "000054", res.OrderID)
	assert.Equal(t, "element Reference", res.Source)
}

func TestExtractCaseInsensitiveMatching(t *testing.T) {
	doc := parseDoc(t, `<Contract><ordernumber>646</ordernumber></Contract>`)

	res, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "000646", res.OrderID)
}

func TestExtractNotFound(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{name: "no candidates at all", xml: `<Contract><Employee>Jean</Employee></Contract>`},
		{name: "candidate present but empty", xml: `<Contract><OrderNumber/></Contract>`},
		{name: "unrelated attributes only", xml: `<Contract id="123"><Clause n="1"/></Contract>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Extract(parseDoc(t, tt.xml))
			assert.ErrorIs(t, err, ErrIdentifierNotFound)
		})
	}
}

func TestExtractCustomPadWidth(t *testing.T) {
	e := New()
	e.PadWidth = 8

	doc := parseDoc(t, `<Contract><OrderNumber>646</OrderNumber></Contract>`)
	res, err := e.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "00000646", res.OrderID)
}
