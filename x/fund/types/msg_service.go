package types

import (
	"context"

	gogogrpc "github.com/cosmos/gogoproto/grpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// MsgPackageName is the proto package every fund message lives in.
const MsgPackageName = "fundchain.fund.v1"

// MsgServer is the server API for the fund Msg service.
type MsgServer interface {
	CreateFund(context.Context, *MsgCreateFund) (*MsgCreateFundResponse, error)
	Deposit(context.Context, *MsgDeposit) (*MsgDepositResponse, error)
	Withdraw(context.Context, *MsgWithdraw) (*MsgWithdrawResponse, error)
	TransferShares(context.Context, *MsgTransferShares) (*MsgTransferSharesResponse, error)
	Trade(context.Context, *MsgTrade) (*MsgTradeResponse, error)
	BuyPool(context.Context, *MsgBuyPool) (*MsgBuyPoolResponse, error)
	SellPool(context.Context, *MsgSellPool) (*MsgSellPoolResponse, error)
	CallDefi(context.Context, *MsgCallDefi) (*MsgCallDefiResponse, error)
	WithdrawManagerFee(context.Context, *MsgWithdrawManagerFee) (*MsgWithdrawManagerFeeResponse, error)
	SetPortal(context.Context, *MsgSetPortal) (*MsgSetPortalResponse, error)
	SetWhitelistOnly(context.Context, *MsgSetWhitelistOnly) (*MsgSetWhitelistOnlyResponse, error)
	SetInvestorAllowed(context.Context, *MsgSetInvestorAllowed) (*MsgSetInvestorAllowedResponse, error)
	SetTradeVerification(context.Context, *MsgSetTradeVerification) (*MsgSetTradeVerificationResponse, error)
	TransferManager(context.Context, *MsgTransferManager) (*MsgTransferManagerResponse, error)
}

// RegisterMsgServer registers the fund Msg service on a gRPC-style router.
// The base app's message service router accepts this and gives every fund
// message an execution route keyed by its type URL.
func RegisterMsgServer(s gogogrpc.Server, srv MsgServer) {
	s.RegisterService(&_Msg_serviceDesc, srv)
}

// msgMethodNames drives the service descriptor and handler table. The
// request message for each method is "Msg"+name, the response is
// "Msg"+name+"Response".
var msgMethodNames = []string{
	"CreateFund",
	"Deposit",
	"Withdraw",
	"TransferShares",
	"Trade",
	"BuyPool",
	"SellPool",
	"CallDefi",
	"WithdrawManagerFee",
	"SetPortal",
	"SetWhitelistOnly",
	"SetInvestorAllowed",
	"SetTradeVerification",
	"TransferManager",
}

// The message router resolves service methods through the global proto file
// registry, so the hand-written messages need a matching file descriptor.
// Field layouts are not declared; the router only resolves names.
func init() {
	messages := make([]*descriptorpb.DescriptorProto, 0, len(msgMethodNames)*2)
	methods := make([]*descriptorpb.MethodDescriptorProto, 0, len(msgMethodNames))
	for _, name := range msgMethodNames {
		request := "Msg" + name
		response := request + "Response"
		messages = append(messages,
			&descriptorpb.DescriptorProto{Name: strPtr(request)},
			&descriptorpb.DescriptorProto{Name: strPtr(response)},
		)
		methods = append(methods, &descriptorpb.MethodDescriptorProto{
			Name:       strPtr(name),
			InputType:  strPtr("." + MsgPackageName + "." + request),
			OutputType: strPtr("." + MsgPackageName + "." + response),
		})
	}

	fd := &descriptorpb.FileDescriptorProto{
		Name:        strPtr("fundchain/fund/v1/tx.proto"),
		Package:     strPtr(MsgPackageName),
		Syntax:      strPtr("proto3"),
		MessageType: messages,
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   strPtr("Msg"),
			Method: methods,
		}},
	}

	file, err := protodesc.NewFile(fd, protoregistry.GlobalFiles)
	if err != nil {
		panic(err)
	}
	if err := protoregistry.GlobalFiles.RegisterFile(file); err != nil {
		panic(err)
	}
}

func strPtr(s string) *string { return &s }

func _Msg_CreateFund_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgCreateFund)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).CreateFund(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/CreateFund",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).CreateFund(ctx, req.(*MsgCreateFund))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_Deposit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgDeposit)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).Deposit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/Deposit",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).Deposit(ctx, req.(*MsgDeposit))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_Withdraw_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgWithdraw)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).Withdraw(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/Withdraw",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).Withdraw(ctx, req.(*MsgWithdraw))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_TransferShares_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgTransferShares)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).TransferShares(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/TransferShares",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).TransferShares(ctx, req.(*MsgTransferShares))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_Trade_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgTrade)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).Trade(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/Trade",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).Trade(ctx, req.(*MsgTrade))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_BuyPool_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgBuyPool)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).BuyPool(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/BuyPool",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).BuyPool(ctx, req.(*MsgBuyPool))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_SellPool_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgSellPool)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).SellPool(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/SellPool",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).SellPool(ctx, req.(*MsgSellPool))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_CallDefi_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgCallDefi)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).CallDefi(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/CallDefi",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).CallDefi(ctx, req.(*MsgCallDefi))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_WithdrawManagerFee_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgWithdrawManagerFee)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).WithdrawManagerFee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/WithdrawManagerFee",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).WithdrawManagerFee(ctx, req.(*MsgWithdrawManagerFee))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_SetPortal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgSetPortal)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).SetPortal(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/SetPortal",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).SetPortal(ctx, req.(*MsgSetPortal))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_SetWhitelistOnly_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgSetWhitelistOnly)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).SetWhitelistOnly(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/SetWhitelistOnly",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).SetWhitelistOnly(ctx, req.(*MsgSetWhitelistOnly))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_SetInvestorAllowed_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgSetInvestorAllowed)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).SetInvestorAllowed(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/SetInvestorAllowed",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).SetInvestorAllowed(ctx, req.(*MsgSetInvestorAllowed))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_SetTradeVerification_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgSetTradeVerification)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).SetTradeVerification(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/SetTradeVerification",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).SetTradeVerification(ctx, req.(*MsgSetTradeVerification))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_TransferManager_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgTransferManager)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).TransferManager(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fundchain.fund.v1.Msg/TransferManager",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).TransferManager(ctx, req.(*MsgTransferManager))
	}
	return interceptor(ctx, in, info, handler)
}

var _Msg_serviceDesc = grpc.ServiceDesc{
	ServiceName: MsgPackageName + ".Msg",
	HandlerType: (*MsgServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateFund", Handler: _Msg_CreateFund_Handler},
		{MethodName: "Deposit", Handler: _Msg_Deposit_Handler},
		{MethodName: "Withdraw", Handler: _Msg_Withdraw_Handler},
		{MethodName: "TransferShares", Handler: _Msg_TransferShares_Handler},
		{MethodName: "Trade", Handler: _Msg_Trade_Handler},
		{MethodName: "BuyPool", Handler: _Msg_BuyPool_Handler},
		{MethodName: "SellPool", Handler: _Msg_SellPool_Handler},
		{MethodName: "CallDefi", Handler: _Msg_CallDefi_Handler},
		{MethodName: "WithdrawManagerFee", Handler: _Msg_WithdrawManagerFee_Handler},
		{MethodName: "SetPortal", Handler: _Msg_SetPortal_Handler},
		{MethodName: "SetWhitelistOnly", Handler: _Msg_SetWhitelistOnly_Handler},
		{MethodName: "SetInvestorAllowed", Handler: _Msg_SetInvestorAllowed_Handler},
		{MethodName: "SetTradeVerification", Handler: _Msg_SetTradeVerification_Handler},
		{MethodName: "TransferManager", Handler: _Msg_TransferManager_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fundchain/fund/v1/tx.proto",
}

// Responses travel back through the router packed as Any payloads, so they
// carry the same minimal proto surface as the requests.

// ProtoMessage implements proto.Message
func (*MsgCreateFundResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateFundResponse) Reset() { *msg = MsgCreateFundResponse{} }

// String implements proto.Message
func (msg MsgCreateFundResponse) String() string { return "MsgCreateFundResponse" }

// XXX_MessageName returns the message type URL for MsgCreateFundResponse
func (msg *MsgCreateFundResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgCreateFundResponse"
}

// ProtoMessage implements proto.Message
func (*MsgDepositResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDepositResponse) Reset() { *msg = MsgDepositResponse{} }

// String implements proto.Message
func (msg MsgDepositResponse) String() string { return "MsgDepositResponse" }

// XXX_MessageName returns the message type URL for MsgDepositResponse
func (msg *MsgDepositResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgDepositResponse"
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawResponse) Reset() { *msg = MsgWithdrawResponse{} }

// String implements proto.Message
func (msg MsgWithdrawResponse) String() string { return "MsgWithdrawResponse" }

// XXX_MessageName returns the message type URL for MsgWithdrawResponse
func (msg *MsgWithdrawResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgWithdrawResponse"
}

// ProtoMessage implements proto.Message
func (*MsgTransferSharesResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferSharesResponse) Reset() { *msg = MsgTransferSharesResponse{} }

// String implements proto.Message
func (msg MsgTransferSharesResponse) String() string { return "MsgTransferSharesResponse" }

// XXX_MessageName returns the message type URL for MsgTransferSharesResponse
func (msg *MsgTransferSharesResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgTransferSharesResponse"
}

// ProtoMessage implements proto.Message
func (*MsgTradeResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTradeResponse) Reset() { *msg = MsgTradeResponse{} }

// String implements proto.Message
func (msg MsgTradeResponse) String() string { return "MsgTradeResponse" }

// XXX_MessageName returns the message type URL for MsgTradeResponse
func (msg *MsgTradeResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgTradeResponse"
}

// ProtoMessage implements proto.Message
func (*MsgBuyPoolResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgBuyPoolResponse) Reset() { *msg = MsgBuyPoolResponse{} }

// String implements proto.Message
func (msg MsgBuyPoolResponse) String() string { return "MsgBuyPoolResponse" }

// XXX_MessageName returns the message type URL for MsgBuyPoolResponse
func (msg *MsgBuyPoolResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgBuyPoolResponse"
}

// ProtoMessage implements proto.Message
func (*MsgSellPoolResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSellPoolResponse) Reset() { *msg = MsgSellPoolResponse{} }

// String implements proto.Message
func (msg MsgSellPoolResponse) String() string { return "MsgSellPoolResponse" }

// XXX_MessageName returns the message type URL for MsgSellPoolResponse
func (msg *MsgSellPoolResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgSellPoolResponse"
}

// ProtoMessage implements proto.Message
func (*MsgCallDefiResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCallDefiResponse) Reset() { *msg = MsgCallDefiResponse{} }

// String implements proto.Message
func (msg MsgCallDefiResponse) String() string { return "MsgCallDefiResponse" }

// XXX_MessageName returns the message type URL for MsgCallDefiResponse
func (msg *MsgCallDefiResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgCallDefiResponse"
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawManagerFeeResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawManagerFeeResponse) Reset() { *msg = MsgWithdrawManagerFeeResponse{} }

// String implements proto.Message
func (msg MsgWithdrawManagerFeeResponse) String() string { return "MsgWithdrawManagerFeeResponse" }

// XXX_MessageName returns the message type URL for MsgWithdrawManagerFeeResponse
func (msg *MsgWithdrawManagerFeeResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgWithdrawManagerFeeResponse"
}

// ProtoMessage implements proto.Message
func (*MsgSetPortalResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetPortalResponse) Reset() { *msg = MsgSetPortalResponse{} }

// String implements proto.Message
func (msg MsgSetPortalResponse) String() string { return "MsgSetPortalResponse" }

// XXX_MessageName returns the message type URL for MsgSetPortalResponse
func (msg *MsgSetPortalResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgSetPortalResponse"
}

// ProtoMessage implements proto.Message
func (*MsgSetWhitelistOnlyResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetWhitelistOnlyResponse) Reset() { *msg = MsgSetWhitelistOnlyResponse{} }

// String implements proto.Message
func (msg MsgSetWhitelistOnlyResponse) String() string { return "MsgSetWhitelistOnlyResponse" }

// XXX_MessageName returns the message type URL for MsgSetWhitelistOnlyResponse
func (msg *MsgSetWhitelistOnlyResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgSetWhitelistOnlyResponse"
}

// ProtoMessage implements proto.Message
func (*MsgSetInvestorAllowedResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetInvestorAllowedResponse) Reset() { *msg = MsgSetInvestorAllowedResponse{} }

// String implements proto.Message
func (msg MsgSetInvestorAllowedResponse) String() string { return "MsgSetInvestorAllowedResponse" }

// XXX_MessageName returns the message type URL for MsgSetInvestorAllowedResponse
func (msg *MsgSetInvestorAllowedResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgSetInvestorAllowedResponse"
}

// ProtoMessage implements proto.Message
func (*MsgSetTradeVerificationResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetTradeVerificationResponse) Reset() { *msg = MsgSetTradeVerificationResponse{} }

// String implements proto.Message
func (msg MsgSetTradeVerificationResponse) String() string { return "MsgSetTradeVerificationResponse" }

// XXX_MessageName returns the message type URL for MsgSetTradeVerificationResponse
func (msg *MsgSetTradeVerificationResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgSetTradeVerificationResponse"
}

// ProtoMessage implements proto.Message
func (*MsgTransferManagerResponse) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferManagerResponse) Reset() { *msg = MsgTransferManagerResponse{} }

// String implements proto.Message
func (msg MsgTransferManagerResponse) String() string { return "MsgTransferManagerResponse" }

// XXX_MessageName returns the message type URL for MsgTransferManagerResponse
func (msg *MsgTransferManagerResponse) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgTransferManagerResponse"
}
