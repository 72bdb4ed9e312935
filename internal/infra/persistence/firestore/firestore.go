// Package firestore contains the concrete implementation of the
// persistence layer on top of the Cloud Firestore document store.
package firestore

import (
	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection names in the backing project. The order collection keeps
// its historical name from the first app release.
const (
	collectionOrders         = "rideRequests"
	collectionCouriers       = "couriers"
	collectionDrivers        = "drivers"
	collectionPricing        = "courierPricing"
	collectionUsers          = "users"
	collectionAdmins         = "adminAccounts"
	collectionPaymentMethods = "paymentMethods"
	collectionChatRooms      = "chatRooms"
	collectionOrderEvents    = "orderEvents"
)

// isNotFound reports whether a Firestore read failed because the
// document does not exist.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// docExists guards transaction reads, which surface missing documents
// through the error as well.
func docExists(snap *firestore.DocumentSnapshot, err error) (bool, error) {
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, err
	}

	return snap.Exists(), nil
}
