package constants

const (
	APP_NAYARN               = "nayarn"
	APP_SHOP_SERVICE         = "shop-service"
	APP_NOTIFICATION_SERVICE = "notification-service"
	APP_MIGRATION            = "migration"
	AUDIENCE_ADMIN           = "audience-admin"
)
