// Package model holds the GORM table structs of the persistence layer.
package model

// All returns every persisted model, in migration order.
func All() []any {
	return []any{
		&SchoolModel{},
		&RosterUserModel{},
		&InvitationModel{},
		&AdminAccountModel{},
		&PageEntryModel{},
		&DesignSettingsModel{},
		&ProductModel{},
		&OrderModel{},
		&StoreSettingModel{},
		&MessageModel{},
		&ContactRequestModel{},
	}
}
