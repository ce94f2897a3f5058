package form

import (
	"net/http"

	"github.com/c2h5oh/datasize"
	"github.com/diamondburned/qaportal/httperr"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
)

// DefaultMaxSize is used when the decoder is given a zero size.
const DefaultMaxSize = 64 * datasize.KB

// Decoder decodes size-limited URL-encoded forms into structs tagged with
// `schema'.
type Decoder struct {
	MaxSize datasize.ByteSize
	decoder *schema.Decoder
}

func NewDecoder(max datasize.ByteSize) *Decoder {
	if max == 0 {
		max = DefaultMaxSize
	}

	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return &Decoder{
		MaxSize: max,
		decoder: d,
	}
}

// Unmarshal decodes the form in the given request into the interface.
func (d *Decoder) Unmarshal(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, int64(d.MaxSize.Bytes()))

	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return httperr.Wrapf(
				err, http.StatusRequestEntityTooLarge,
				"Failed to parse form, maximum size is %s", d.MaxSize.HumanReadable(),
			)
		}

		return httperr.Wrap(err, http.StatusBadRequest, "Failed to parse form")
	}

	if err := d.decoder.Decode(v, r.PostForm); err != nil {
		return httperr.Wrap(err, http.StatusBadRequest, "Failed to decode form")
	}

	return nil
}
