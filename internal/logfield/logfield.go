package lf

import "go.uber.org/zap"

const (
	FieldModule    = "module"
	FieldToken     = "token"
	FieldUserID    = "user_id"
	FieldPupilID   = "pupil_id"
	FieldGroupID   = "group_id"
	FieldEventID   = "event_id"
	FieldPaymentID = "payment_id"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func Token(token string) zap.Field {
	return zap.String(FieldToken, token)
}

func UserID(ID uint) zap.Field {
	return zap.Uint(FieldUserID, ID)
}

func PupilID(ID uint) zap.Field {
	return zap.Uint(FieldPupilID, ID)
}

func GroupID(ID uint) zap.Field {
	return zap.Uint(FieldGroupID, ID)
}

func EventID(ID uint) zap.Field {
	return zap.Uint(FieldEventID, ID)
}

func PaymentID(ID uint) zap.Field {
	return zap.Uint(FieldPaymentID, ID)
}
