package gameserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "minesweeper.v1.BoardService"

// BoardServiceServer is the server API for BoardService. Payloads are
// google.protobuf.Struct messages.
type BoardServiceServer interface {
	CreateGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reveal(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ToggleFlag(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListGames(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterBoardServiceServer registers srv on s
func RegisterBoardServiceServer(s grpc.ServiceRegistrar, srv BoardServiceServer) {
	s.RegisterService(&BoardService_ServiceDesc, srv)
}

type structMethod func(BoardServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a BoardServiceServer method to a grpc.MethodDesc handler
func unaryHandler(fullMethod string, call structMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BoardServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(BoardServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// BoardService_ServiceDesc is the grpc.ServiceDesc for BoardService
var BoardService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BoardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateGame", Handler: unaryHandler(fullMethod("CreateGame"), BoardServiceServer.CreateGame)},
		{MethodName: "GetGame", Handler: unaryHandler(fullMethod("GetGame"), BoardServiceServer.GetGame)},
		{MethodName: "Reveal", Handler: unaryHandler(fullMethod("Reveal"), BoardServiceServer.Reveal)},
		{MethodName: "ToggleFlag", Handler: unaryHandler(fullMethod("ToggleFlag"), BoardServiceServer.ToggleFlag)},
		{MethodName: "DeleteGame", Handler: unaryHandler(fullMethod("DeleteGame"), BoardServiceServer.DeleteGame)},
		{MethodName: "ListGames", Handler: unaryHandler(fullMethod("ListGames"), BoardServiceServer.ListGames)},
	},
	// No compiled .proto backs the service; reflection lists it by name only
	Streams: []grpc.StreamDesc{},
}

// BoardServiceClient is the client API for BoardService
type BoardServiceClient interface {
	CreateGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Reveal(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ToggleFlag(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListGames(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type boardServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBoardServiceClient creates a client over cc
func NewBoardServiceClient(cc grpc.ClientConnInterface) BoardServiceClient {
	return &boardServiceClient{cc}
}

func (c *boardServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) CreateGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "CreateGame", in, opts...)
}

func (c *boardServiceClient) GetGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetGame", in, opts...)
}

func (c *boardServiceClient) Reveal(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Reveal", in, opts...)
}

func (c *boardServiceClient) ToggleFlag(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ToggleFlag", in, opts...)
}

func (c *boardServiceClient) DeleteGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "DeleteGame", in, opts...)
}

func (c *boardServiceClient) ListGames(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListGames", in, opts...)
}
