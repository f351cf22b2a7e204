package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "bidsync.v1.DecisionService"

const (
	MethodPing              = "/" + ServiceName + "/Ping"
	MethodRefreshToken      = "/" + ServiceName + "/RefreshToken"
	MethodGetAppConstants   = "/" + ServiceName + "/GetAppConstants"
	MethodGetPost           = "/" + ServiceName + "/GetPost"
	MethodGetOptions        = "/" + ServiceName + "/GetOptions"
	MethodPlaceBid          = "/" + ServiceName + "/PlaceBid"
	MethodPledge            = "/" + ServiceName + "/Pledge"
	MethodVote              = "/" + ServiceName + "/Vote"
	MethodValidateText      = "/" + ServiceName + "/ValidateText"
	MethodCreateSetupIntent = "/" + ServiceName + "/CreateSetupIntent"
	MethodUpdateSetupIntent = "/" + ServiceName + "/UpdateSetupIntent"
	MethodDeleteOption      = "/" + ServiceName + "/DeleteOption"
)

// DecisionServiceClient is the client API for DecisionService.
type DecisionServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	GetAppConstants(ctx context.Context, in *GetAppConstantsRequest, opts ...grpc.CallOption) (*GetAppConstantsResponse, error)
	GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*GetPostResponse, error)
	GetOptions(ctx context.Context, in *GetOptionsRequest, opts ...grpc.CallOption) (*GetOptionsResponse, error)
	PlaceBid(ctx context.Context, in *ContributionRequest, opts ...grpc.CallOption) (*ContributionResponse, error)
	Pledge(ctx context.Context, in *ContributionRequest, opts ...grpc.CallOption) (*ContributionResponse, error)
	Vote(ctx context.Context, in *ContributionRequest, opts ...grpc.CallOption) (*ContributionResponse, error)
	ValidateText(ctx context.Context, in *ValidateTextRequest, opts ...grpc.CallOption) (*ValidateTextResponse, error)
	CreateSetupIntent(ctx context.Context, in *CreateSetupIntentRequest, opts ...grpc.CallOption) (*SetupIntentResponse, error)
	UpdateSetupIntent(ctx context.Context, in *UpdateSetupIntentRequest, opts ...grpc.CallOption) (*SetupIntentResponse, error)
	DeleteOption(ctx context.Context, in *DeleteOptionRequest, opts ...grpc.CallOption) (*DeleteOptionResponse, error)
}

type decisionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDecisionServiceClient(cc grpc.ClientConnInterface) DecisionServiceClient {
	return &decisionServiceClient{cc: cc}
}

func invoke[Resp any, PResp interface {
	*Resp
	Message
}](ctx context.Context, cc grpc.ClientConnInterface, method string, in Message, opts []grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *decisionServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *decisionServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *decisionServiceClient) GetAppConstants(ctx context.Context, in *GetAppConstantsRequest, opts ...grpc.CallOption) (*GetAppConstantsResponse, error) {
	return invoke[GetAppConstantsResponse](ctx, c.cc, MethodGetAppConstants, in, opts)
}

func (c *decisionServiceClient) GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*GetPostResponse, error) {
	return invoke[GetPostResponse](ctx, c.cc, MethodGetPost, in, opts)
}

func (c *decisionServiceClient) GetOptions(ctx context.Context, in *GetOptionsRequest, opts ...grpc.CallOption) (*GetOptionsResponse, error) {
	return invoke[GetOptionsResponse](ctx, c.cc, MethodGetOptions, in, opts)
}

func (c *decisionServiceClient) PlaceBid(ctx context.Context, in *ContributionRequest, opts ...grpc.CallOption) (*ContributionResponse, error) {
	return invoke[ContributionResponse](ctx, c.cc, MethodPlaceBid, in, opts)
}

func (c *decisionServiceClient) Pledge(ctx context.Context, in *ContributionRequest, opts ...grpc.CallOption) (*ContributionResponse, error) {
	return invoke[ContributionResponse](ctx, c.cc, MethodPledge, in, opts)
}

func (c *decisionServiceClient) Vote(ctx context.Context, in *ContributionRequest, opts ...grpc.CallOption) (*ContributionResponse, error) {
	return invoke[ContributionResponse](ctx, c.cc, MethodVote, in, opts)
}

func (c *decisionServiceClient) ValidateText(ctx context.Context, in *ValidateTextRequest, opts ...grpc.CallOption) (*ValidateTextResponse, error) {
	return invoke[ValidateTextResponse](ctx, c.cc, MethodValidateText, in, opts)
}

func (c *decisionServiceClient) CreateSetupIntent(ctx context.Context, in *CreateSetupIntentRequest, opts ...grpc.CallOption) (*SetupIntentResponse, error) {
	return invoke[SetupIntentResponse](ctx, c.cc, MethodCreateSetupIntent, in, opts)
}

func (c *decisionServiceClient) UpdateSetupIntent(ctx context.Context, in *UpdateSetupIntentRequest, opts ...grpc.CallOption) (*SetupIntentResponse, error) {
	return invoke[SetupIntentResponse](ctx, c.cc, MethodUpdateSetupIntent, in, opts)
}

func (c *decisionServiceClient) DeleteOption(ctx context.Context, in *DeleteOptionRequest, opts ...grpc.CallOption) (*DeleteOptionResponse, error) {
	return invoke[DeleteOptionResponse](ctx, c.cc, MethodDeleteOption, in, opts)
}

// DecisionServiceServer is the server API for DecisionService.
type DecisionServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	GetAppConstants(context.Context, *GetAppConstantsRequest) (*GetAppConstantsResponse, error)
	GetPost(context.Context, *GetPostRequest) (*GetPostResponse, error)
	GetOptions(context.Context, *GetOptionsRequest) (*GetOptionsResponse, error)
	PlaceBid(context.Context, *ContributionRequest) (*ContributionResponse, error)
	Pledge(context.Context, *ContributionRequest) (*ContributionResponse, error)
	Vote(context.Context, *ContributionRequest) (*ContributionResponse, error)
	ValidateText(context.Context, *ValidateTextRequest) (*ValidateTextResponse, error)
	CreateSetupIntent(context.Context, *CreateSetupIntentRequest) (*SetupIntentResponse, error)
	UpdateSetupIntent(context.Context, *UpdateSetupIntentRequest) (*SetupIntentResponse, error)
	DeleteOption(context.Context, *DeleteOptionRequest) (*DeleteOptionResponse, error)
}

// UnimplementedDecisionServiceServer can be embedded to get forward
// compatible implementations.
type UnimplementedDecisionServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedDecisionServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedDecisionServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedDecisionServiceServer) GetAppConstants(context.Context, *GetAppConstantsRequest) (*GetAppConstantsResponse, error) {
	return nil, unimplemented("GetAppConstants")
}
func (UnimplementedDecisionServiceServer) GetPost(context.Context, *GetPostRequest) (*GetPostResponse, error) {
	return nil, unimplemented("GetPost")
}
func (UnimplementedDecisionServiceServer) GetOptions(context.Context, *GetOptionsRequest) (*GetOptionsResponse, error) {
	return nil, unimplemented("GetOptions")
}
func (UnimplementedDecisionServiceServer) PlaceBid(context.Context, *ContributionRequest) (*ContributionResponse, error) {
	return nil, unimplemented("PlaceBid")
}
func (UnimplementedDecisionServiceServer) Pledge(context.Context, *ContributionRequest) (*ContributionResponse, error) {
	return nil, unimplemented("Pledge")
}
func (UnimplementedDecisionServiceServer) Vote(context.Context, *ContributionRequest) (*ContributionResponse, error) {
	return nil, unimplemented("Vote")
}
func (UnimplementedDecisionServiceServer) ValidateText(context.Context, *ValidateTextRequest) (*ValidateTextResponse, error) {
	return nil, unimplemented("ValidateText")
}
func (UnimplementedDecisionServiceServer) CreateSetupIntent(context.Context, *CreateSetupIntentRequest) (*SetupIntentResponse, error) {
	return nil, unimplemented("CreateSetupIntent")
}
func (UnimplementedDecisionServiceServer) UpdateSetupIntent(context.Context, *UpdateSetupIntentRequest) (*SetupIntentResponse, error) {
	return nil, unimplemented("UpdateSetupIntent")
}
func (UnimplementedDecisionServiceServer) DeleteOption(context.Context, *DeleteOptionRequest) (*DeleteOptionResponse, error) {
	return nil, unimplemented("DeleteOption")
}

func RegisterDecisionServiceServer(s grpc.ServiceRegistrar, srv DecisionServiceServer) {
	s.RegisterService(&DecisionServiceDesc, srv)
}

func unaryHandler[Req any, PReq interface {
	*Req
	Message
}, Resp any](fullMethod string, call func(DecisionServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DecisionServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DecisionServiceServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DecisionServiceDesc is the grpc.ServiceDesc for DecisionService.
var DecisionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DecisionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler[PingRequest](MethodPing, DecisionServiceServer.Ping)},
		{MethodName: "RefreshToken", Handler: unaryHandler[RefreshTokenRequest](MethodRefreshToken, DecisionServiceServer.RefreshToken)},
		{MethodName: "GetAppConstants", Handler: unaryHandler[GetAppConstantsRequest](MethodGetAppConstants, DecisionServiceServer.GetAppConstants)},
		{MethodName: "GetPost", Handler: unaryHandler[GetPostRequest](MethodGetPost, DecisionServiceServer.GetPost)},
		{MethodName: "GetOptions", Handler: unaryHandler[GetOptionsRequest](MethodGetOptions, DecisionServiceServer.GetOptions)},
		{MethodName: "PlaceBid", Handler: unaryHandler[ContributionRequest](MethodPlaceBid, DecisionServiceServer.PlaceBid)},
		{MethodName: "Pledge", Handler: unaryHandler[ContributionRequest](MethodPledge, DecisionServiceServer.Pledge)},
		{MethodName: "Vote", Handler: unaryHandler[ContributionRequest](MethodVote, DecisionServiceServer.Vote)},
		{MethodName: "ValidateText", Handler: unaryHandler[ValidateTextRequest](MethodValidateText, DecisionServiceServer.ValidateText)},
		{MethodName: "CreateSetupIntent", Handler: unaryHandler[CreateSetupIntentRequest](MethodCreateSetupIntent, DecisionServiceServer.CreateSetupIntent)},
		{MethodName: "UpdateSetupIntent", Handler: unaryHandler[UpdateSetupIntentRequest](MethodUpdateSetupIntent, DecisionServiceServer.UpdateSetupIntent)},
		{MethodName: "DeleteOption", Handler: unaryHandler[DeleteOptionRequest](MethodDeleteOption, DecisionServiceServer.DeleteOption)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/proto/decision.proto",
}
