package mediacrypt

import (
	"bytes"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	"github.com/tink-crypto/tink-go/v2/mac"
	commonpb "github.com/tink-crypto/tink-go/v2/proto/common_go_proto"
	hmacpb "github.com/tink-crypto/tink-go/v2/proto/hmac_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"

	"google.golang.org/protobuf/proto"
)

// newTruncatedMAC creates a Tink MAC primitive for HMAC-SHA256 truncated to
// MacSize bytes from raw key bytes. The RAW output prefix keeps the tag free
// of Tink framing, as the wire format requires.
func newTruncatedMAC(macKey []byte) (tink.MAC, error) {
	hmacKey := &hmacpb.HmacKey{
		Version: 0,
		Params: &hmacpb.HmacParams{
			Hash:    commonpb.HashType_SHA256,
			TagSize: MacSize,
		},
		KeyValue: macKey,
	}

	serializedKey, err := proto.Marshal(hmacKey)
	if err != nil {
		return nil, fmt.Errorf("serializing HmacKey: %w", err)
	}

	keyData := &tinkpb.KeyData{
		TypeUrl:         "type.googleapis.com/google.crypto.tink.HmacKey",
		Value:           serializedKey,
		KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
	}

	keySet := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{
			{
				KeyData:          keyData,
				Status:           tinkpb.KeyStatusType_ENABLED,
				KeyId:            1,
				OutputPrefixType: tinkpb.OutputPrefixType_RAW,
			},
		},
	}

	serializedKeyset, err := proto.Marshal(keySet)
	if err != nil {
		return nil, fmt.Errorf("serializing keyset: %w", err)
	}

	keySetHandle, err := insecurecleartextkeyset.Read(
		keyset.NewBinaryReader(bytes.NewReader(serializedKeyset)))
	if err != nil {
		return nil, fmt.Errorf("creating keyset handle: %w", err)
	}

	primitive, err := mac.New(keySetHandle)
	if err != nil {
		return nil, fmt.Errorf("creating MAC primitive: %w", err)
	}

	return primitive, nil
}

// macInput builds the authenticated message: iv || ciphertext.
func macInput(iv, ciphertext []byte) []byte {
	msg := make([]byte, 0, len(iv)+len(ciphertext))
	msg = append(msg, iv...)

	return append(msg, ciphertext...)
}
