package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hotel-pms/internal/auth"
)

var _ = Describe("BcryptHasher", func() {
	hasher := auth.NewBcryptHasher(4)

	It("verifies the original password only", func() {
		digest, err := hasher.Hash("password123")
		Expect(err).NotTo(HaveOccurred())
		Expect(digest).NotTo(Equal("password123"))

		Expect(hasher.Verify(&digest, "password123")).To(BeTrue())
		Expect(hasher.Verify(&digest, "password124")).To(BeFalse())
	})

	It("salts every digest", func() {
		first, err := hasher.Hash("password123")
		Expect(err).NotTo(HaveOccurred())
		second, err := hasher.Hash("password123")
		Expect(err).NotTo(HaveOccurred())
		Expect(first).NotTo(Equal(second))
	})

	It("never matches a missing or malformed digest", func() {
		empty := ""
		malformed := "not-a-bcrypt-digest"
		Expect(hasher.Verify(nil, "password123")).To(BeFalse())
		Expect(hasher.Verify(&empty, "")).To(BeFalse())
		Expect(hasher.Verify(&malformed, "password123")).To(BeFalse())
	})

	It("falls back to the default cost when out of range", func() {
		digest, err := auth.NewBcryptHasher(100).Hash("pw")
		Expect(err).NotTo(HaveOccurred())
		Expect(digest).To(HavePrefix("$2a$10$"))
	})
})
